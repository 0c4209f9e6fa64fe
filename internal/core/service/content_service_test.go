package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/warisan/heritage-api/internal/core/domain"
	"github.com/warisan/heritage-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository with compare-and-swap semantics
// ---------------------------------------------------------------------------

type stubContentRepo struct {
	byID   map[string]*domain.Content
	nextID int
	// forceStatus, when set, rewrites the stored status right before the next
	// UpdateStatus call to simulate a concurrent decision.
	forceStatus domain.ContentStatus
	// vanishOnUpdate deletes the item at UpdateStatus time to simulate a
	// concurrent hard delete.
	vanishOnUpdate bool
	createErr      error
}

func newStubContentRepo() *stubContentRepo {
	return &stubContentRepo{byID: make(map[string]*domain.Content)}
}

func (r *stubContentRepo) Create(_ context.Context, c *domain.Content) (*domain.Content, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *c
	clone.ID = "content-" + strconv.Itoa(r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubContentRepo) FindByID(_ context.Context, id string) (*domain.Content, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrContentNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubContentRepo) List(_ context.Context, f ports.ListContentsFilter) ([]*domain.Content, int64, error) {
	var matched []*domain.Content
	for _, c := range r.byID {
		if f.Status != "" && string(c.Status) != f.Status {
			continue
		}
		if f.Kind != "" && string(c.Kind) != f.Kind {
			continue
		}
		if f.OwnerID != "" && c.OwnerID != f.OwnerID {
			continue
		}
		if f.CategoryID != "" && c.CategoryID != f.CategoryID {
			continue
		}
		clone := *c
		matched = append(matched, &clone)
	}
	total := int64(len(matched))

	skip := (f.Page - 1) * f.Limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*domain.Content{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) || f.Limit <= 0 {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubContentRepo) Update(_ context.Context, c *domain.Content) error {
	stored, ok := r.byID[c.ID]
	if !ok {
		return domain.ErrContentNotFound
	}
	stored.Title = c.Title
	stored.Body = c.Body
	stored.CategoryID = c.CategoryID
	stored.Region = c.Region
	stored.UpdatedAt = c.UpdatedAt
	return nil
}

// UpdateStatus mirrors the conditional Mongo write: the change only lands when
// the stored status still equals from.
func (r *stubContentRepo) UpdateStatus(_ context.Context, id string, from domain.ContentStatus, change domain.StatusChange) error {
	if r.vanishOnUpdate {
		delete(r.byID, id)
	}
	stored, ok := r.byID[id]
	if !ok {
		return domain.ErrStaleStatus
	}
	if r.forceStatus != "" {
		stored.Status = r.forceStatus
		r.forceStatus = ""
	}
	if stored.Status != from {
		return domain.ErrStaleStatus
	}
	stored.Status = change.To
	stored.RejectionReason = change.RejectionReason
	stored.ReviewedAt = change.ReviewedAt
	return nil
}

func (r *stubContentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrContentNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Stub dedup and audit sink
// ---------------------------------------------------------------------------

type stubDedup struct {
	seen     map[string]bool
	claimErr error
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) Claim(_ context.Context, fingerprint string) (bool, error) {
	if d.claimErr != nil {
		return false, d.claimErr
	}
	if d.seen[fingerprint] {
		return false, nil
	}
	d.seen[fingerprint] = true
	return true, nil
}

type stubAudit struct {
	events []domain.ModerationEvent
}

func (a *stubAudit) Enqueue(event domain.ModerationEvent) {
	a.events = append(a.events, event)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var (
	contributorClaims = domain.Claims{SubjectID: "u1", Role: domain.RoleContributor}
	strangerClaims    = domain.Claims{SubjectID: "u2", Role: domain.RoleContributor}
	officerClaims     = domain.Claims{SubjectID: "off1", Role: domain.RoleOfficer}
	adminClaims       = domain.Claims{SubjectID: "adm1", Role: domain.RoleAdmin}
	plainClaims       = domain.Claims{SubjectID: "u3", Role: domain.RoleUser}
)

func newTestContentService(repo *stubContentRepo, dedup ReportDedup, audit AuditSink, autoPublish bool) ports.ContentService {
	return NewContentService(repo, dedup, audit, autoPublish, discardLogger)
}

func seedContent(repo *stubContentRepo, status domain.ContentStatus, ownerID string) *domain.Content {
	repo.nextID++
	id := "content-" + strconv.Itoa(repo.nextID)
	now := time.Now().UTC()
	c := &domain.Content{
		ID:        id,
		Kind:      domain.KindArticle,
		Title:     "Batik Tulis",
		Body:      "Hand-drawn wax-resist dyeing.",
		OwnerID:   ownerID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	repo.byID[id] = c
	return c
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestContentService_Create_StartsAsDraft(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)

	created, err := svc.Create(context.Background(), ports.CreateContentInput{
		Kind:  "article",
		Title: "Angklung",
		Body:  "Bamboo instrument of West Java.",
		Actor: contributorClaims,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Status != domain.StatusDraft {
		t.Errorf("expected status %q, got %q", domain.StatusDraft, created.Status)
	}
	if created.OwnerID != "u1" {
		t.Errorf("owner must be the actor, got %q", created.OwnerID)
	}
	if created.ReviewedAt != nil {
		t.Error("draft must not carry ReviewedAt")
	}
}

func TestContentService_Create_RoleWithoutCapability(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)

	_, err := svc.Create(context.Background(), ports.CreateContentInput{
		Kind: "article", Title: "x", Body: "y", Actor: plainClaims,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestContentService_Create_UnknownKind(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)

	_, err := svc.Create(context.Background(), ports.CreateContentInput{
		Kind: "meme", Title: "x", Body: "y", Actor: contributorClaims,
	})
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestContentService_Create_AutoPublishPrivileged(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, true)

	created, err := svc.Create(context.Background(), ports.CreateContentInput{
		Kind: "article", Title: "x", Body: "y", Actor: adminClaims,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Status != domain.StatusPublished {
		t.Errorf("expected auto-published status, got %q", created.Status)
	}
	if created.ReviewedAt == nil {
		t.Error("auto-published item must carry ReviewedAt")
	}
}

func TestContentService_Create_AutoPublishDisabled(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)

	created, err := svc.Create(context.Background(), ports.CreateContentInput{
		Kind: "article", Title: "x", Body: "y", Actor: adminClaims,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Status != domain.StatusDraft {
		t.Errorf("with auto-publish off even admins start at draft, got %q", created.Status)
	}
}

func TestContentService_Create_AutoPublishNotForContributors(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, true)

	created, err := svc.Create(context.Background(), ports.CreateContentInput{
		Kind: "culture", Title: "x", Body: "y", Actor: contributorClaims,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Status != domain.StatusDraft {
		t.Errorf("contributors never auto-publish, got %q", created.Status)
	}
}

// ---------------------------------------------------------------------------
// Get visibility
// ---------------------------------------------------------------------------

func TestContentService_Get_PublishedIsPublic(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)
	seeded := seedContent(repo, domain.StatusPublished, "u1")

	item, err := svc.Get(context.Background(), seeded.ID, false, domain.Claims{})
	if err != nil {
		t.Fatalf("published item must be publicly readable: %v", err)
	}
	if item.ID != seeded.ID {
		t.Errorf("expected %q, got %q", seeded.ID, item.ID)
	}
}

func TestContentService_Get_DraftHiddenFromPublic(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)
	seeded := seedContent(repo, domain.StatusDraft, "u1")

	_, err := svc.Get(context.Background(), seeded.ID, false, domain.Claims{})
	if !errors.Is(err, domain.ErrContentNotFound) {
		t.Errorf("unpublished existence must not leak, expected ErrContentNotFound, got %v", err)
	}
}

func TestContentService_Get_DraftHiddenFromStrangers(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)
	seeded := seedContent(repo, domain.StatusDraft, "u1")

	_, err := svc.Get(context.Background(), seeded.ID, true, strangerClaims)
	if !errors.Is(err, domain.ErrContentNotFound) {
		t.Errorf("expected ErrContentNotFound for non-owner, got %v", err)
	}
}

func TestContentService_Get_OwnerSeesOwnDraft(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)
	seeded := seedContent(repo, domain.StatusDraft, "u1")

	if _, err := svc.Get(context.Background(), seeded.ID, true, contributorClaims); err != nil {
		t.Errorf("owner must see own draft: %v", err)
	}
}

func TestContentService_Get_ReviewerSeesPending(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)
	seeded := seedContent(repo, domain.StatusPendingReview, "u1")

	if _, err := svc.Get(context.Background(), seeded.ID, true, officerClaims); err != nil {
		t.Errorf("reviewer must see pending items: %v", err)
	}
}

// ---------------------------------------------------------------------------
// List visibility
// ---------------------------------------------------------------------------

func TestContentService_List_PublicForcedToPublished(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)
	seedContent(repo, domain.StatusPublished, "u1")
	seedContent(repo, domain.StatusDraft, "u1")
	seedContent(repo, domain.StatusPendingReview, "u2")

	// A public caller asking for drafts still only gets published items.
	res, err := svc.List(context.Background(), ports.ListContentsInput{
		Status: string(domain.StatusDraft),
		Page:   1, Limit: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 1 {
		t.Fatalf("expected 1 published item, got %d", res.Total)
	}
	if res.Items[0].Status != domain.StatusPublished {
		t.Errorf("expected published item, got %q", res.Items[0].Status)
	}
}

func TestContentService_List_ReviewerFiltersFreely(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)
	seedContent(repo, domain.StatusPublished, "u1")
	seedContent(repo, domain.StatusPendingReview, "u1")
	seedContent(repo, domain.StatusPendingReview, "u2")

	res, err := svc.List(context.Background(), ports.ListContentsInput{
		Status:        string(domain.StatusPendingReview),
		Authenticated: true,
		Actor:         officerClaims,
		Page:          1, Limit: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 2 {
		t.Errorf("reviewer queue: expected 2, got %d", res.Total)
	}
}

func TestContentService_List_MineScopesToOwner(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)
	seedContent(repo, domain.StatusDraft, "u1")
	seedContent(repo, domain.StatusRejected, "u1")
	seedContent(repo, domain.StatusDraft, "u2")

	res, err := svc.List(context.Background(), ports.ListContentsInput{
		Mine:          true,
		Authenticated: true,
		Actor:         contributorClaims,
		Page:          1, Limit: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 2 {
		t.Errorf("mine: expected 2 owned items, got %d", res.Total)
	}
	for _, item := range res.Items {
		if item.OwnerID != "u1" {
			t.Errorf("mine listing leaked item owned by %q", item.OwnerID)
		}
	}
}

func TestContentService_List_LimitCapped(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)

	res, err := svc.List(context.Background(), ports.ListContentsInput{Limit: 999, Page: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Limit != 100 {
		t.Errorf("expected limit capped at 100, got %d", res.Limit)
	}

	res, err = svc.List(context.Background(), ports.ListContentsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Limit != 20 {
		t.Errorf("expected default limit 20, got %d", res.Limit)
	}
	if res.Page != 1 {
		t.Errorf("expected default page 1, got %d", res.Page)
	}
}

// ---------------------------------------------------------------------------
// Update and Delete
// ---------------------------------------------------------------------------

func TestContentService_Update_OwnerEditsDraft(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)
	seeded := seedContent(repo, domain.StatusDraft, "u1")

	updated, err := svc.Update(context.Background(), ports.UpdateContentInput{
		ID: seeded.ID, Title: "New title", Body: "New body", Actor: contributorClaims,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "New title" {
		t.Errorf("title not updated, got %q", updated.Title)
	}
	if repo.byID[seeded.ID].Title != "New title" {
		t.Error("update not persisted")
	}
}

func TestContentService_Update_OwnerCannotEditPublished(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)
	seeded := seedContent(repo, domain.StatusPublished, "u1")

	_, err := svc.Update(context.Background(), ports.UpdateContentInput{
		ID: seeded.ID, Title: "sneaky edit", Actor: contributorClaims,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("owners must not edit live items, expected ErrForbidden, got %v", err)
	}
}

func TestContentService_Update_AdminEditsAnything(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)
	seeded := seedContent(repo, domain.StatusPublished, "u1")

	if _, err := svc.Update(context.Background(), ports.UpdateContentInput{
		ID: seeded.ID, Title: "corrected", Actor: adminClaims,
	}); err != nil {
		t.Errorf("admin must edit any item: %v", err)
	}
}

func TestContentService_Update_NonOwnerForbidden(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)
	seeded := seedContent(repo, domain.StatusDraft, "u1")

	_, err := svc.Update(context.Background(), ports.UpdateContentInput{
		ID: seeded.ID, Title: "x", Actor: strangerClaims,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestContentService_Delete_OwnerDeletesOwn(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)
	seeded := seedContent(repo, domain.StatusDraft, "u1")

	if err := svc.Delete(context.Background(), seeded.ID, contributorClaims); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.byID[seeded.ID]; ok {
		t.Error("item must be gone after delete")
	}
}

func TestContentService_Delete_NonOwnerForbidden(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)
	seeded := seedContent(repo, domain.StatusDraft, "u1")

	err := svc.Delete(context.Background(), seeded.ID, strangerClaims)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if _, ok := repo.byID[seeded.ID]; !ok {
		t.Error("item must survive a forbidden delete")
	}
}

func TestContentService_Delete_AdminDeletesAnonymousItem(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)
	seeded := seedContent(repo, domain.StatusPendingReview, "")

	if err := svc.Delete(context.Background(), seeded.ID, adminClaims); err != nil {
		t.Errorf("admin must delete ownerless items: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Transition pipeline
// ---------------------------------------------------------------------------

func TestContentService_Transition_SubmitPersists(t *testing.T) {
	repo := newStubContentRepo()
	audit := &stubAudit{}
	svc := newTestContentService(repo, nil, audit, false)
	seeded := seedContent(repo, domain.StatusDraft, "u1")

	updated, err := svc.Transition(context.Background(), ports.TransitionInput{
		ID: seeded.ID, Target: domain.StatusPendingReview, Actor: contributorClaims,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.StatusPendingReview {
		t.Errorf("expected %q, got %q", domain.StatusPendingReview, updated.Status)
	}
	if repo.byID[seeded.ID].Status != domain.StatusPendingReview {
		t.Error("transition not persisted")
	}
}

func TestContentService_Transition_RejectRecordsReason(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)
	seeded := seedContent(repo, domain.StatusPendingReview, "u1")

	updated, err := svc.Transition(context.Background(), ports.TransitionInput{
		ID: seeded.ID, Target: domain.StatusRejected, Reason: "insufficient evidence", Actor: officerClaims,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.RejectionReason != "insufficient evidence" {
		t.Errorf("reason not recorded, got %q", updated.RejectionReason)
	}
	stored := repo.byID[seeded.ID]
	if stored.RejectionReason != "insufficient evidence" {
		t.Errorf("stored reason: got %q", stored.RejectionReason)
	}
	if stored.ReviewedAt == nil {
		t.Error("stored ReviewedAt must be set")
	}
}

func TestContentService_Transition_IllegalPair(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)
	seeded := seedContent(repo, domain.StatusDraft, "u1")

	_, err := svc.Transition(context.Background(), ports.TransitionInput{
		ID: seeded.ID, Target: domain.StatusPublished, Actor: adminClaims,
	})
	if !errors.Is(err, domain.ErrIllegalTransition) {
		t.Errorf("expected ErrIllegalTransition, got %v", err)
	}
	if repo.byID[seeded.ID].Status != domain.StatusDraft {
		t.Error("failed transition must not change stored status")
	}
}

func TestContentService_Transition_ConcurrentDecisionStale(t *testing.T) {
	// Two reviewers decide the same item; the slower one must get a stale
	// status error, not silently overwrite.
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)
	seeded := seedContent(repo, domain.StatusPendingReview, "u1")

	// Simulate the other reviewer winning between read and write.
	repo.forceStatus = domain.StatusRejected

	_, err := svc.Transition(context.Background(), ports.TransitionInput{
		ID: seeded.ID, Target: domain.StatusPublished, Actor: officerClaims,
	})
	if !errors.Is(err, domain.ErrStaleStatus) {
		t.Errorf("expected ErrStaleStatus, got %v", err)
	}
}

func TestContentService_Transition_VanishedItemIsNotFound(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, nil, nil, false)
	seeded := seedContent(repo, domain.StatusPendingReview, "u1")

	// The item disappears between the service's read and its conditional
	// write; the caller should see not-found, not a conflict.
	repo.vanishOnUpdate = true

	_, err := svc.Transition(context.Background(), ports.TransitionInput{
		ID: seeded.ID, Target: domain.StatusPublished, Actor: officerClaims,
	})
	if !errors.Is(err, domain.ErrContentNotFound) {
		t.Errorf("expected ErrContentNotFound, got %v", err)
	}
}

func TestContentService_Transition_EmitsAuditEvent(t *testing.T) {
	repo := newStubContentRepo()
	audit := &stubAudit{}
	svc := newTestContentService(repo, nil, audit, false)
	seeded := seedContent(repo, domain.StatusPendingReview, "u1")

	_, err := svc.Transition(context.Background(), ports.TransitionInput{
		ID: seeded.ID, Target: domain.StatusRejected, Reason: "duplicate entry", Actor: officerClaims,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(audit.events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(audit.events))
	}
	ev := audit.events[0]
	if ev.ContentID != seeded.ID {
		t.Errorf("event content id: want %q, got %q", seeded.ID, ev.ContentID)
	}
	if ev.From != domain.StatusPendingReview || ev.To != domain.StatusRejected {
		t.Errorf("event edge: got %s -> %s", ev.From, ev.To)
	}
	if ev.ActorID != "off1" {
		t.Errorf("event actor: got %q", ev.ActorID)
	}
	if ev.Reason != "duplicate entry" {
		t.Errorf("event reason: got %q", ev.Reason)
	}
}

func TestContentService_Transition_NoAuditOnFailure(t *testing.T) {
	repo := newStubContentRepo()
	audit := &stubAudit{}
	svc := newTestContentService(repo, nil, audit, false)
	seeded := seedContent(repo, domain.StatusPendingReview, "u1")

	_, _ = svc.Transition(context.Background(), ports.TransitionInput{
		ID: seeded.ID, Target: domain.StatusRejected, Actor: officerClaims, // no reason
	})
	if len(audit.events) != 0 {
		t.Errorf("failed transition must not be audited, got %d events", len(audit.events))
	}
}

// ---------------------------------------------------------------------------
// Report submission
// ---------------------------------------------------------------------------

func TestContentService_SubmitReport_AnonymousEntersPending(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, newStubDedup(), nil, false)

	created, err := svc.SubmitReport(context.Background(), ports.ReportInput{
		Title: "Lenggang Nyai dance fading", Body: "Few performers remain.", Region: "Jakarta",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Status != domain.StatusPendingReview {
		t.Errorf("anonymous report must enter at %q, got %q", domain.StatusPendingReview, created.Status)
	}
	if created.OwnerID != "" {
		t.Errorf("anonymous report must have no owner, got %q", created.OwnerID)
	}
	if created.Kind != domain.KindReport {
		t.Errorf("expected kind %q, got %q", domain.KindReport, created.Kind)
	}
}

func TestContentService_SubmitReport_DuplicateRejected(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, newStubDedup(), nil, false)

	in := ports.ReportInput{Title: "Lenggang Nyai dance fading", Body: "x", Region: "Jakarta"}
	if _, err := svc.SubmitReport(context.Background(), in); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	_, err := svc.SubmitReport(context.Background(), in)
	if !errors.Is(err, domain.ErrDuplicateReport) {
		t.Errorf("expected ErrDuplicateReport, got %v", err)
	}
	if len(repo.byID) != 1 {
		t.Errorf("duplicate must not be stored, have %d items", len(repo.byID))
	}
}

func TestContentService_SubmitReport_DedupNormalizesTitle(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, newStubDedup(), nil, false)

	if _, err := svc.SubmitReport(context.Background(), ports.ReportInput{
		Title: "Lenggang Nyai", Region: "Jakarta",
	}); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	_, err := svc.SubmitReport(context.Background(), ports.ReportInput{
		Title: "  LENGGANG NYAI  ", Region: "jakarta",
	})
	if !errors.Is(err, domain.ErrDuplicateReport) {
		t.Errorf("case and whitespace variants must dedup, got %v", err)
	}
}

func TestContentService_SubmitReport_AuthenticatedSkipsDedup(t *testing.T) {
	repo := newStubContentRepo()
	svc := newTestContentService(repo, newStubDedup(), nil, false)

	in := ports.ReportInput{Title: "Same title", Region: "Bali", Actor: contributorClaims}
	if _, err := svc.SubmitReport(context.Background(), in); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.SubmitReport(context.Background(), in); err != nil {
		t.Errorf("authenticated submissions are not deduped: %v", err)
	}

	created, _ := svc.SubmitReport(context.Background(), in)
	if created.OwnerID != "u1" {
		t.Errorf("authenticated report must record the owner, got %q", created.OwnerID)
	}
}

func TestContentService_SubmitReport_DedupOutageAccepts(t *testing.T) {
	// A broken dedup store must not block reports from coming in.
	repo := newStubContentRepo()
	dedup := newStubDedup()
	dedup.claimErr = errors.New("redis down")
	svc := newTestContentService(repo, dedup, nil, false)

	if _, err := svc.SubmitReport(context.Background(), ports.ReportInput{
		Title: "Report during outage", Region: "Papua",
	}); err != nil {
		t.Errorf("dedup outage must not reject the report: %v", err)
	}
}
