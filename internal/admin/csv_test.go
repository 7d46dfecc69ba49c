package admin

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestMarshalCSVQuoting(t *testing.T) {
	rows := []struct {
		Title string  `csv:"title"`
		Price float64 `csv:"price"`
	}{
		{Title: "A,B", Price: 10},
	}

	var buf bytes.Buffer
	n, err := MarshalCSV(&buf, rows)
	if err != nil {
		t.Fatalf("MarshalCSV error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "title,price" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != `"A,B",10` {
		t.Fatalf("unexpected data row: %q", lines[1])
	}
}

func TestMarshalCSVDoublesEmbeddedQuotes(t *testing.T) {
	rows := []struct {
		Title string `csv:"title"`
	}{
		{Title: `Say "hello"`},
	}

	var buf bytes.Buffer
	if _, err := MarshalCSV(&buf, rows); err != nil {
		t.Fatalf("MarshalCSV error: %v", err)
	}
	if !strings.Contains(buf.String(), `"Say ""hello"""`) {
		t.Fatalf("embedded quotes not doubled: %q", buf.String())
	}
}

func TestMarshalCSVEmptySetIsNoOp(t *testing.T) {
	var buf bytes.Buffer
	n, err := MarshalCSV(&buf, []Transaction{})
	if err != nil {
		t.Fatalf("MarshalCSV error: %v", err)
	}
	if n != 0 || buf.Len() != 0 {
		t.Fatalf("empty set should produce no output, got %q", buf.String())
	}
}

func TestMarshalCSVSkipsDashTag(t *testing.T) {
	rows := []struct {
		Title  string `csv:"title"`
		Secret string `csv:"-"`
	}{
		{Title: "A", Secret: "hide"},
	}

	var buf bytes.Buffer
	if _, err := MarshalCSV(&buf, rows); err != nil {
		t.Fatalf("MarshalCSV error: %v", err)
	}
	if strings.Contains(buf.String(), "hide") {
		t.Fatalf("skipped field leaked: %q", buf.String())
	}
}

func TestMarshalCSVTransactions(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []Transaction{
		{ID: "txn-1", CourseTitle: "Intro, the course", LearnerEmail: "a@example.com", Amount: 49.5, Status: TransactionStatusPaid, CreatedAt: created},
	}

	var buf bytes.Buffer
	if _, err := MarshalCSV(&buf, rows); err != nil {
		t.Fatalf("MarshalCSV error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "id,course,email,amount,status,created_at" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != `txn-1,"Intro, the course",a@example.com,49.5,paid,2025-03-01T12:00:00Z` {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}
