// Package history tracks and persists engagement state across sessions.
package history

import (
	"github.com/metafates/gache"
	"github.com/streamdex-cli/streamdex/filesystem"
	"github.com/streamdex-cli/streamdex/where"
)

// cacher provides an abstracted, disk-backed registry for engagement records.
var cacher = gache.New[map[string]*SavedEngagement](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of persisted engagement records.
func Get() (map[string]*SavedEngagement, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedEngagement), nil
	}
	return cached, nil
}

// Find looks up the record for a context identity.
func Find(itemID, kind string, season, episode int) (*SavedEngagement, bool) {
	saved, err := Get()
	if err != nil {
		return nil, false
	}

	probe := SavedEngagement{ItemID: itemID, Kind: kind, Season: season, Episode: episode}
	record, ok := saved[probe.encode()]
	return record, ok
}

// Save persists an engagement record. A new candidate for the same context
// replaces the old entry; re-saving the same candidate keeps the maximum
// observed offset so progress never regresses.
func Save(record *SavedEngagement) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	if existing, exists := saved[record.encode()]; exists && existing.CandidateID == record.CandidateID {
		if record.Offset < existing.Offset {
			record.Offset = existing.Offset
		}
		if record.Duration == 0 {
			record.Duration = existing.Duration
		}
	}

	saved[record.encode()] = record
	return cacher.Set(saved)
}

// Remove permanently deletes a record from the registry.
func Remove(record *SavedEngagement) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, record.encode())
	return cacher.Set(saved)
}
