// Package store persists the transformed views as the JSON files the
// front-end reads. The file set is the pipeline/UI contract: it is rewritten
// wholesale on every successful run and never merged incrementally, so the
// previous run's files stay intact as last-known-good until a full run
// replaces them.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"kinoschurke/internal/kino"
	"kinoschurke/internal/views"
)

const (
	DateViewFile          = "date-view.json"
	RoomViewFile          = "room-view.json"
	MovieViewFile         = "movie-view.json"
	EventViewFile         = "event-view.json"
	MoviesReferenceFile   = "movies-reference.json"
	ShowLookupFile        = "show-lookup.json"
	TheatersReferenceFile = "theaters-reference.json"
	SourceDataFile        = "source_movie_data.json"
)

type Store struct {
	Dir string
}

func New(dir string) Store {
	return Store{Dir: dir}
}

// WriteSource persists the merge-stage output, the input of the transformer.
func (s Store) WriteSource(movies []kino.MergedMovie) error {
	return s.writeJSON(SourceDataFile, movies)
}

func (s Store) ReadSource() ([]kino.MergedMovie, error) {
	var movies []kino.MergedMovie
	err := s.readJSON(SourceDataFile, &movies)
	return movies, err
}

// WriteViews persists every view file.
func (s Store) WriteViews(v views.Views) error {
	files := []struct {
		name string
		data any
	}{
		{DateViewFile, v.DateView},
		{RoomViewFile, v.RoomView},
		{MovieViewFile, v.MovieView},
		{EventViewFile, v.EventView},
		{MoviesReferenceFile, v.MoviesReference},
		{ShowLookupFile, v.ShowLookup},
		{TheatersReferenceFile, v.Theaters},
	}
	for _, f := range files {
		if err := s.writeJSON(f.name, f.data); err != nil {
			return err
		}
	}
	return nil
}

func (s Store) ReadShowLookup() (map[string]views.LookupEntry, error) {
	var lookup map[string]views.LookupEntry
	err := s.readJSON(ShowLookupFile, &lookup)
	return lookup, err
}

func (s Store) ReadDateView() ([]views.DateEntry, error) {
	var view []views.DateEntry
	err := s.readJSON(DateViewFile, &view)
	return view, err
}

// writeJSON writes to a temp file in the same directory and renames it into
// place, a crashed run never leaves a torn view file behind.
func (s Store) writeJSON(name string, data any) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.Dir, name+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(s.Dir, name))
}

func (s Store) readJSON(name string, out any) error {
	raw, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
