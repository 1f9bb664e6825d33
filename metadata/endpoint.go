package metadata

import (
	"fmt"
	"strings"

	"github.com/crmarques/apirecord/faults"
)

// ResolveEndpoint produces the remote path for an action against a record
// of the given type. The capability check runs before the identity check so
// a forbidden action is always reported as the more fundamental error, even
// when identity is also missing.
func ResolveEndpoint(typeName string, meta RecordMetadata, action Action, key any) (string, error) {
	if !action.IsValid() {
		return "", faults.NewTypedError(
			faults.ConfigError,
			fmt.Sprintf("unknown action %q for record type %q", action, typeName),
			nil,
		)
	}
	if !meta.Allows(action) {
		return "", faults.NewTypedError(
			faults.ActionNotPermittedError,
			fmt.Sprintf("action %q is not permitted for record type %q", action, typeName),
			nil,
		)
	}

	collection := normalizeCollectionPath(meta.CollectionPath)
	if collection == "" {
		return "", faults.NewTypedError(
			faults.ConfigError,
			fmt.Sprintf("record type %q declares no collection path", typeName),
			nil,
		)
	}

	switch action {
	case ActionGet, ActionPost:
		return collection, nil
	default:
	}

	// patch, put, delete address one resource and are meaningless without
	// an existing identity.
	keyText := keyPathSegment(key)
	if keyText == "" {
		return "", faults.NewTypedError(
			faults.MissingIdentityError,
			fmt.Sprintf("record type %q has no identity for action %q", typeName, action),
			nil,
		)
	}

	return collection + "/" + keyText, nil
}

// ResolveResourceEndpoint produces the single-resource path for an action,
// even for actions that normally address the collection. Refresh uses it to
// GET one resource by identity. The check order matches ResolveEndpoint.
func ResolveResourceEndpoint(typeName string, meta RecordMetadata, action Action, key any) (string, error) {
	if !meta.Allows(action) {
		return "", faults.NewTypedError(
			faults.ActionNotPermittedError,
			fmt.Sprintf("action %q is not permitted for record type %q", action, typeName),
			nil,
		)
	}

	collection := normalizeCollectionPath(meta.CollectionPath)
	if collection == "" {
		return "", faults.NewTypedError(
			faults.ConfigError,
			fmt.Sprintf("record type %q declares no collection path", typeName),
			nil,
		)
	}

	keyText := keyPathSegment(key)
	if keyText == "" {
		return "", faults.NewTypedError(
			faults.MissingIdentityError,
			fmt.Sprintf("record type %q has no identity for action %q", typeName, action),
			nil,
		)
	}

	return collection + "/" + keyText, nil
}

func normalizeCollectionPath(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	if trimmed != "/" {
		trimmed = strings.TrimSuffix(trimmed, "/")
	}
	return trimmed
}

func keyPathSegment(key any) string {
	if key == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", key))
}
