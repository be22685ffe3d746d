package usage

// NameMapping maps feature ids of one kind to their names.
type NameMapping map[int64]string

// Resolver resolves feature identities against the mapping of their kind.
type Resolver struct {
	HTMLJS NameMapping
	CSS    NameMapping
}

func NewResolver(htmljs, css NameMapping) *Resolver {
	return &Resolver{HTMLJS: htmljs, CSS: css}
}

// Resolve returns the name of id. Unknown ids are not an error: the mapping
// may predate the feature.
func (r *Resolver) Resolve(id Identity) (string, bool) {
	var mapping NameMapping
	switch id.Kind {
	case HTMLJS:
		mapping = r.HTMLJS
	case CSS:
		mapping = r.CSS
	}
	name, ok := mapping[id.ID]
	if !ok || name == "" {
		return "", false
	}
	return name, true
}
