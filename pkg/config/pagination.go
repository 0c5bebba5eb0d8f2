package config

import (
	"fmt"
	"strings"
)

const (
	defaultPageSize = 20
	maxPageSize     = 2000
)

type PaginationConfig struct {
	DefaultSize int32 `koanf:"defaultsize"`
	MaxSize     int32 `koanf:"maxsize"`
}

// String returns a string representation of the pagination configuration.
func (c *PaginationConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Pagination ---\n")
	b.WriteString(fmt.Sprintf("  defaultsize: %d\n", c.DefaultSize))
	b.WriteString(fmt.Sprintf("  maxsize: %d\n", c.MaxSize))
	return b.String()
}

// Validate fills unset sizes with 20 and 2000.
func (c *PaginationConfig) Validate() error {
	if c.DefaultSize == 0 {
		c.DefaultSize = defaultPageSize
	}
	if c.MaxSize == 0 {
		c.MaxSize = maxPageSize
	}
	if c.DefaultSize < 0 || c.MaxSize < 0 {
		return fmt.Errorf("page sizes must be positive")
	}
	if c.DefaultSize > c.MaxSize {
		return fmt.Errorf("default page size %d exceeds max page size %d", c.DefaultSize, c.MaxSize)
	}
	return nil
}
