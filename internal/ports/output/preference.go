package output

import "context"

// PreferenceStore persists single key/value user preferences.
// Load returns domain.ErrPreferenceNotFound when key was never saved.
type PreferenceStore interface {
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, value string) error
}
