package sqlite

import (
	"time"

	"github.com/zjrosen/defreg/internal/domain/descriptor"
	"github.com/zjrosen/defreg/internal/source"
)

// SourceModel is a row of the sources table. Times are Unix seconds.
type SourceModel struct {
	ID        int64
	DefType   string
	Prefix    string
	Namespace string
	Name      string
	Content   string
	Hash      string
	CreatedAt int64
	UpdatedAt int64
}

func (m *SourceModel) descriptor() descriptor.Descriptor {
	return descriptor.Descriptor{
		Prefix:    m.Prefix,
		Namespace: m.Namespace,
		Name:      m.Name,
		DefType:   descriptor.DefType(m.DefType),
	}
}

func (m *SourceModel) toSource() source.Source {
	return source.Source{
		Descriptor:   m.descriptor(),
		Content:      m.Content,
		LastModified: time.Unix(m.UpdatedAt, 0),
	}
}
