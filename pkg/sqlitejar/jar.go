package sqlitejar

// Jar is the in-memory half of a persistent cookie jar. It owns matching and
// the live cookie set; a Store only persists what the jar hands over.
type Jar interface {
	// Records returns the jar's current cookies.
	Records() []Record
	// Restore adds previously persisted cookies to the jar.
	Restore(records []Record)
}

// Backend is the persistence side of a jar. *Store implements it.
type Backend interface {
	Load() ([]Record, error)
	Save(records []Record) error
}

var _ Backend = (*Store)(nil)

// Restore loads the live cookies from b into j.
func Restore(b Backend, j Jar) error {
	records, err := b.Load()
	if err != nil {
		return err
	}
	j.Restore(records)
	return nil
}

// Persist replaces the content of b with the durable cookies held by j.
func Persist(b Backend, j Jar) error {
	return b.Save(j.Records())
}
