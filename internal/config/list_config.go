package config

import "time"

type ListConfig interface {
	GetFilterDebounce() time.Duration
	GetDefaultPageSize() int
	GetPageSizeOptions() []int
}

type List struct {
	file *File
}

var _ ListConfig = List{}

func (l List) GetFilterDebounce() time.Duration {
	return time.Duration(orDefault(l.file.List.DebounceMillis, 500)) * time.Millisecond
}

func (l List) GetDefaultPageSize() int {
	return orDefault(l.file.List.DefaultPageSize, 15)
}

func (l List) GetPageSizeOptions() []int {
	if len(l.file.List.PageSizeOptions) > 0 {
		return l.file.List.PageSizeOptions
	}
	return []int{5, 15, 30, 40}
}
