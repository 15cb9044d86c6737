package repository

type SearchOptions struct {
	Indices []string
	Body    any
}

type CountOptions struct {
	Indices []string
	Query   any
}
