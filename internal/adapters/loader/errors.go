package loader

import "errors"

// Sentinel kinds for data loading errors.
var (
	ErrLoad         = errors.New("load dataset")
	ErrWatch        = errors.New("watch data files")
	ErrGroupsFormat = errors.New("groups file must be an object of string arrays")
)
