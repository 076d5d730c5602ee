package siflines

// MapOperation transforms a single line
type MapOperation func(line string) (string, error)

// FilterOperation returns true iff a line should be kept
type FilterOperation func(line string) (bool, error)
