// Package session holds the column-traversal wizard: the column registry with
// its role assignment, the per-column override store, the cursor that walks
// the processable columns and the decision table it assembles.
//
// A Session is driven by one caller issuing one operation at a time. Every
// operation is still serialized behind a single mutex so the cursor and the
// override store can never be observed half-updated.
//
// Typical flow:
//
//	s := session.New()
//	_ = s.Load(ctx, loader, "data.csv")
//	_, _ = s.SetRoles(session.Roles{Outcome: "Y", Grouping: session.None, Panel: session.None})
//	for {
//		view, err := s.Current()
//		if errors.Is(err, session.ErrDone) {
//			break
//		}
//		_, _ = s.Advance(view.Defaults)
//	}
//	records, _ := s.Export()
package session
