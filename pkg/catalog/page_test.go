package catalog

import (
	"context"
	"testing"
)

func TestPage_Len(t *testing.T) {
	page := &Page{Records: []Record{{ID: 3}, {ID: 1}, {ID: 2}}}
	if page.Len() != 3 {
		t.Errorf("Len() = %d, want 3", page.Len())
	}

	var nilPage *Page
	if nilPage.Len() != 0 {
		t.Error("nil page should have zero length")
	}
}

func TestLoaderFunc(t *testing.T) {
	var loader Loader = LoaderFunc(func(_ context.Context, pageIndex, pageSize int) (*Page, error) {
		return &Page{Index: pageIndex, Size: pageSize}, nil
	})

	page, err := loader.LoadPage(context.Background(), 4, 25)
	if err != nil {
		t.Fatalf("LoadPage() error = %v", err)
	}
	if page.Index != 4 || page.Size != 25 {
		t.Errorf("LoadPage() = (%d, %d), want (4, 25)", page.Index, page.Size)
	}
}
