package storage

import "errors"

var ErrConfigCorrupt = errors.New("config document exists but could not be parsed")
var ErrStoreCorrupt = errors.New("ballot table exists but could not be parsed")
var ErrAlreadyVoted = errors.New("national code already present in ballot table")
var ErrFileNotFound = errors.New("ballot table file not found")
