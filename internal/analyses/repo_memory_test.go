package analyses

import (
	"context"
	"testing"
	"time"

	"resume-ats/internal/ats"
)

func TestMemoryRepoResultIsNotAliased(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	now := time.Now().UTC()
	if err := repo.Create(ctx, Analysis{ID: "a1", UserID: "u1", ResumeID: "r1", Status: StatusProcessing, CreatedAt: now}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	result := ats.ResumeAnalysis{
		ATSScore:        70,
		KeywordsFound:   []string{"python", "sql"},
		KeywordsMissing: []string{"docker"},
		Suggestions:     []string{"Add metrics"},
		SpecificFeedback: ats.SpecificFeedback{
			Strengths: []string{"Clear layout"},
		},
	}
	if err := repo.Complete(ctx, "a1", result, "text", now); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	// The caller still owns its slices after Complete.
	result.KeywordsFound[0] = "cobol"

	got, err := repo.GetByID(ctx, "a1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	got.Result.KeywordsFound[1] = "fortran"
	got.Result.KeywordsMissing[0] = "kubernetes"
	got.Result.Suggestions = append(got.Result.Suggestions[:0], "overwritten")
	got.Result.SpecificFeedback.Strengths[0] = "changed"

	listed, err := repo.List(ctx, ListFilter{UserID: "u1"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	listed[0].Result.KeywordsFound[0] = "pascal"

	again, err := repo.GetByID(ctx, "a1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	res := again.Result
	if res.KeywordsFound[0] != "python" || res.KeywordsFound[1] != "sql" {
		t.Fatalf("keywords found mutated: %v", res.KeywordsFound)
	}
	if res.KeywordsMissing[0] != "docker" {
		t.Fatalf("keywords missing mutated: %v", res.KeywordsMissing)
	}
	if res.Suggestions[0] != "Add metrics" {
		t.Fatalf("suggestions mutated: %v", res.Suggestions)
	}
	if res.SpecificFeedback.Strengths[0] != "Clear layout" {
		t.Fatalf("strengths mutated: %v", res.SpecificFeedback.Strengths)
	}
}
