package service

import (
	"github.com/creatorhub/matchengine/internal/domain/scoring"
	"github.com/creatorhub/matchengine/internal/domain/types"
)

// breakdown flattens a compatibility result into the persisted/served shape.
func breakdown(res scoring.Compatibility) types.Breakdown {
	b := types.Breakdown{
		BestPlatform:  res.Meta.BestPlatform,
		PriorityBoost: res.Meta.PriorityBoost,
	}
	for _, m := range res.Modules {
		switch m.Name {
		case scoring.ModuleNiche:
			b.NicheScore = m.Score
		case scoring.ModuleTopics:
			b.TopicScore = m.Score
		case scoring.ModulePlatform:
			b.PlatformScore = m.Score
		case scoring.ModuleEngagement:
			b.EngagementScore = m.Score
		}
	}
	return b
}
