package usage

import "loov.dev/featurecheck/trace"

// Aggregate partitions feature usage events by kind, keeps the first
// occurrence of every identity and resolves the names.
//
// Events of other names are ignored. Events without a numeric feature
// argument are counted in Usage.Skipped.
func Aggregate(events []trace.Event, resolver *Resolver) Usage {
	var u Usage

	seen := make(map[Identity]struct{})
	for i := range events {
		ev := &events[i]

		kind, ok := KindOf(ev.Name)
		if !ok {
			continue
		}
		id, ok := ev.IntArg("feature")
		if !ok {
			u.Skipped++
			continue
		}

		identity := Identity{Kind: kind, ID: id}
		if _, dup := seen[identity]; dup {
			continue
		}
		seen[identity] = struct{}{}

		feature := Feature{
			Identity:  identity,
			Timestamp: ev.Timestamp,
		}
		feature.Name, feature.Resolved = resolver.Resolve(identity)

		switch kind {
		case HTMLJS:
			u.HTMLJS = append(u.HTMLJS, feature)
		case CSS:
			u.CSS = append(u.CSS, feature)
		}
	}

	return u
}
