package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/creatorhub/matchengine/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"MATCHENGINE_CONFIG",
		"MATCHENGINE_ADDR",
		"MATCHENGINE_WORKER_COUNT",
		"MATCHENGINE_DEFAULT_LIMIT",
		"MATCHENGINE_MAX_LIMIT",
		"MATCHENGINE_TARGET_ENGAGEMENT",
		"MATCHENGINE_PRIORITY_BOOST_CAP",
		"MATCHENGINE_POSTGRES_DSN",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DefaultLimit, convey.ShouldEqual, 12)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MATCHENGINE_ADDR", ":8080")
			_ = os.Setenv("MATCHENGINE_WORKER_COUNT", "16")
			_ = os.Setenv("MATCHENGINE_MAX_LIMIT", "50")
			_ = os.Setenv("MATCHENGINE_TARGET_ENGAGEMENT", "0.05")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.MaxLimit, convey.ShouldEqual, 50)
				convey.So(cfg.TargetEngagement, convey.ShouldEqual, 0.05)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
addr: ":9090"
worker_count: 24
priority_boost_cap: 0.03
weights:
  niche: 0.5
  topics: 0.3
  platform: 0.1
  engagement: 0.1
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("MATCHENGINE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 24)
				convey.So(cfg.PriorityBoostCap, convey.ShouldEqual, 0.03)
				convey.So(cfg.Weights["niche"], convey.ShouldEqual, 0.5)
			})
		})

		convey.Convey("When the config is invalid", func() {
			_ = os.Setenv("MATCHENGINE_MAX_LIMIT", "0")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should fail with the invalid-config kind", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("MATCHENGINE_CONFIG", "/nonexistent/config.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should fail with the load kind", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})
	})
}
