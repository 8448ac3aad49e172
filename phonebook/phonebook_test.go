package phonebook_test

import (
	"testing"

	"github.com/arthur-debert/phonebook/phonebook"
	"github.com/arthur-debert/phonebook/phonebook/store"
	"github.com/arthur-debert/phonebook/phonebook/testutil"
	"github.com/spf13/afero"
)

func TestOpen(t *testing.T) {
	fs := afero.NewMemMapFs()
	opts := []phonebook.Option{store.WithFs(fs), store.WithFileLockFactory(store.NewMockFileLockFactory())}

	pb, err := phonebook.Open("book.txt", opts...)
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	pb.Add(testutil.Doe)
	if err := pb.Save(); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	_ = pb.Close()

	reopened, err := phonebook.Open("book.txt", opts...)
	if err != nil {
		t.Fatalf("failed to reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	want := phonebook.NewBook()
	want.Add(testutil.Doe)
	testutil.AssertEntries(t, reopened.Entries(), want.Entries())
}
