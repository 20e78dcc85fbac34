package taxonomy

// Kind names a classification axis.
type Kind string

// Taxonomy kinds.
const (
	Services   Kind = "services"
	Industries Kind = "industries"
)

// Term is one entry of a taxonomy.
type Term struct {
	Name string
	Slug string
}

// Catalog is the reference data shown next to the search filters.
type Catalog struct {
	Services   []Term
	Industries []Term
}
