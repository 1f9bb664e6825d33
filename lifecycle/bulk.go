package lifecycle

import (
	"context"
	"fmt"

	"github.com/crmarques/apirecord/record"
)

// Finder loads the record with the given identity so the single-record
// delete path, hooks included, can run against it.
type Finder func(ctx context.Context, id any) (*record.Record, error)

// DestroyMany deletes the records behind the given identity values one by
// one and returns the count of successful deletions. Values that fail to
// load or delete are logged and skipped; they do not abort the rest of the
// batch. Slice arguments are flattened one level, so both a variadic list
// and a collected id set work.
func (e *Engine) DestroyMany(ctx context.Context, find Finder, ids ...any) int {
	if e == nil || find == nil {
		return 0
	}

	destroyed := 0
	for _, id := range normalizeIDs(ids) {
		rec, err := find(ctx, id)
		if err != nil {
			e.logger.WarnContext(ctx, "destroy skipped, record failed to load", "id", id, "error", err)
			continue
		}
		deleted, err := e.Delete(ctx, rec)
		if err != nil {
			e.logger.WarnContext(ctx, "destroy failed", "id", id, "error", err)
			continue
		}
		if deleted {
			destroyed++
		}
	}
	return destroyed
}

func normalizeIDs(ids []any) []any {
	flattened := make([]any, 0, len(ids))
	for _, id := range ids {
		switch typed := id.(type) {
		case []any:
			flattened = append(flattened, typed...)
		case []string:
			for _, item := range typed {
				flattened = append(flattened, item)
			}
		case []int:
			for _, item := range typed {
				flattened = append(flattened, item)
			}
		case []int64:
			for _, item := range typed {
				flattened = append(flattened, item)
			}
		default:
			flattened = append(flattened, typed)
		}
	}
	return flattened
}

// Push saves the record and then, depth-first, every record reachable
// through its relation containers. The cascade short-circuits on the first
// failure; earlier successful saves are not rolled back.
func (e *Engine) Push(ctx context.Context, rec *record.Record) error {
	if err := e.Save(ctx, rec); err != nil {
		return err
	}

	for _, relation := range rec.Relations() {
		for idx, related := range relation.Records {
			if related == nil {
				continue
			}
			if err := e.Push(ctx, related); err != nil {
				return fmt.Errorf("pushing relation %s[%d]: %w", relation.Name, idx, err)
			}
		}
	}
	return nil
}
