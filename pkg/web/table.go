package web

import (
	"fmt"
	"math"
	"net/http"

	"github.com/aifirst/llmdemos/pkg/server/handlertools"
)

const DefaultPageSize = 10

func NewTable(id string, columns []Column) *Table {
	return &Table{
		TableID: id,
		Columns: columns,
	}
}

type Column struct {
	Name string
}

// Table is a paginated view over an in-memory result set.
type Table struct {
	TableID     string
	Columns     []Column
	Rows        interface{}
	TotalCount  int
	RowCount    int
	Offset      int
	CurrentPage int
	PageSize    int
	PageCount   int
}

func (t *Table) GetOffset() int {
	return (t.CurrentPage - 1) * t.GetPageSize()
}

func (t *Table) GetPageSize() int {
	if t.PageSize == 0 {
		return DefaultPageSize
	}
	return t.PageSize
}

func (t *Table) GetPageCount() int {
	totalCount := float64(t.TotalCount)
	pageSize := float64(t.GetPageSize())
	return int(math.Ceil(totalCount / pageSize))
}

func (t *Table) ParseQueryParams(r *http.Request) {
	t.CurrentPage = 1
	t.PageSize = DefaultPageSize

	if page, err := handlertools.IntFromQuery[int](r, "page"); err == nil && page > 0 {
		t.CurrentPage = page
	}
}

func (t *Table) GetTablePath(basePath string, page int) string {
	return fmt.Sprintf("%s?page=%d", basePath, page)
}

// Paginate sets the table's rows to the current page of items.
func Paginate[T any](t *Table, items []T) {
	t.TotalCount = len(items)
	t.PageSize = t.GetPageSize()
	t.PageCount = t.GetPageCount()
	if t.CurrentPage < 1 {
		t.CurrentPage = 1
	}
	if t.PageCount > 0 && t.CurrentPage > t.PageCount {
		t.CurrentPage = t.PageCount
	}

	t.Offset = min(t.GetOffset(), len(items))
	end := min(t.Offset+t.PageSize, len(items))
	page := items[t.Offset:end]

	t.Rows = page
	t.RowCount = len(page)
}
