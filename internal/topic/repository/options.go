package repository

// ListOptions selects clusters of one project.
type ListOptions struct {
	ProjectName string
	Issues      []string
	Size        int
}

// UpsertSummary reports a bulk upsert. Failed items never abort the bulk.
type UpsertSummary struct {
	Upserted int
	Created  int
	Updated  int
	Failed   int
	Errors   []string
}
