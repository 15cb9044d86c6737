package usecase

import (
	"analytics-srv/internal/model"
)

// plan turns model groups into upsert documents. New issues fill the last part
// of a label first; a part never holds more than SplitThreshold issues, the
// overflow moves to the next ordinal. Documents carry only the issues to add.
func (uc *implUseCase) plan(project string, existing []model.TopicCluster, groups []group) []model.TopicCluster {
	byID := make(map[string]model.TopicCluster, len(existing))
	mapped := map[string]bool{}
	for _, c := range existing {
		byID[c.UUID] = c
		for _, i := range c.ListIssue {
			mapped[i] = true
		}
	}

	var out []model.TopicCluster
	for _, g := range groups {
		var fresh []string
		for _, i := range g.Issues {
			if !mapped[i] {
				mapped[i] = true
				fresh = append(fresh, i)
			}
		}
		if len(fresh) == 0 {
			continue
		}

		// Find the last existing part of this label.
		ordinal, size := 0, 0
		desc := g.Description
		for n := 0; ; n++ {
			c, ok := byID[model.ClusterID(uc.cfg.Namespace, project, g.Name, n)]
			if !ok {
				break
			}
			ordinal, size = n, len(c.ListIssue)
			if desc == "" {
				desc = c.Description
			}
		}

		for len(fresh) > 0 {
			room := uc.cfg.SplitThreshold - size
			if room <= 0 {
				ordinal++
				size = 0
				continue
			}
			take := min(room, len(fresh))
			out = append(out, model.TopicCluster{
				UUID:         model.ClusterID(uc.cfg.Namespace, project, g.Name, ordinal),
				ProjectName:  project,
				UnifiedIssue: g.Name,
				Description:  desc,
				ListIssue:    fresh[:take],
			})
			fresh = fresh[take:]
			size += take
		}
	}
	return out
}
