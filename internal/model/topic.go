package model

import (
	"strconv"

	"github.com/google/uuid"
)

// TopicNamespace is the name-based UUID namespace of topic clusters.
var TopicNamespace = uuid.MustParse("6f1c0f3a-5d0e-4c59-9a3f-3b7e0d2a9c11")

// TopicCluster groups raw issues of a project under one unified label.
type TopicCluster struct {
	UUID         string   `json:"uuid"`
	ProjectName  string   `json:"project_name"`
	UnifiedIssue string   `json:"unified_issue"`
	Description  string   `json:"description"`
	ListIssue    []string `json:"list_issue"`
}

// ClusterID returns the deterministic id of (project, unified). A positive
// ordinal addresses the ordinal-th split part of an oversized cluster.
func ClusterID(ns uuid.UUID, project, unified string, ordinal int) string {
	name := project + "||" + unified
	if ordinal > 0 {
		name += "||" + strconv.Itoa(ordinal)
	}
	return uuid.NewSHA1(ns, []byte(name)).String()
}

// ClusterMapping is the index body of the topic cluster index.
var ClusterMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"uuid":          map[string]any{"type": "keyword"},
			"project_name":  map[string]any{"type": "keyword"},
			"unified_issue": map[string]any{"type": "keyword"},
			"description":   map[string]any{"type": "text"},
			"list_issue":    map[string]any{"type": "keyword"},
		},
	},
}
