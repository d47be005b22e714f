package importer

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"floe/internal/domain/category"
	"floe/internal/domain/grant"
	"floe/internal/domain/organisation"
	"floe/internal/domain/person"
	"floe/internal/domain/project"
	"floe/internal/infrastructure/gtr"
	"floe/internal/shared/logger"
)

// Identifier group and taxonomy constants for registry-sourced records.
const (
	// rcukIdentifierType is the identifier group holding the funder reference.
	rcukIdentifierType = "RCUK"

	// gtrSchemeNamespace is the fixed scheme for registry-sourced terms
	// that have no curated counterpart.
	gtrSchemeNamespace = "gtr"
	gtrSchemeName      = "Gateway to Research"
)

// junkNoneIdentifier marks classification entries the registry emits
// when a project carries no classification at all.
const junkNoneIdentifier = "none"

// Reconciler applies one adapted external project to the local
// Grant/Project/Person/Participant/Categorisation graph. All writes go
// through the repositories, which join the caller's transaction; the
// orchestration wrapper owns commit and rollback.
type Reconciler struct {
	grantRepo          grant.Repository
	projectRepo        project.Repository
	allocationRepo     project.AllocationRepository
	participantRepo    project.ParticipantRepository
	personRepo         person.Repository
	organisationRepo   organisation.Repository
	schemeRepo         category.SchemeRepository
	termRepo           category.TermRepository
	categorisationRepo category.CategorisationRepository
	tables             *gtr.MappingTables
	logger             logger.Interface
}

// NewReconciler creates a new reconciler.
func NewReconciler(
	grantRepo grant.Repository,
	projectRepo project.Repository,
	allocationRepo project.AllocationRepository,
	participantRepo project.ParticipantRepository,
	personRepo person.Repository,
	organisationRepo organisation.Repository,
	schemeRepo category.SchemeRepository,
	termRepo category.TermRepository,
	categorisationRepo category.CategorisationRepository,
	tables *gtr.MappingTables,
	logger logger.Interface,
) *Reconciler {
	return &Reconciler{
		grantRepo:          grantRepo,
		projectRepo:        projectRepo,
		allocationRepo:     allocationRepo,
		participantRepo:    participantRepo,
		personRepo:         personRepo,
		organisationRepo:   organisationRepo,
		schemeRepo:         schemeRepo,
		termRepo:           termRepo,
		categorisationRepo: categorisationRepo,
		tables:             tables,
		logger:             logger,
	}
}

// Create builds a brand-new Grant/Project/Allocation subgraph for an
// external project whose reference is not yet known locally, then runs
// category and people reconciliation.
func (r *Reconciler) Create(ctx context.Context, adapter *gtr.ProjectAdapter, reference string) error {
	if err := r.checkReference(adapter, reference); err != nil {
		return err
	}

	attrs, err := r.grantAttributes(ctx, adapter)
	if err != nil {
		return err
	}

	newGrant, err := grant.New(reference, attrs)
	if err != nil {
		return fmt.Errorf("failed to build grant for %s: %w", reference, err)
	}
	if err := r.grantRepo.Create(ctx, newGrant); err != nil {
		return err
	}

	newProject, err := project.New(projectAttributes(adapter, reference))
	if err != nil {
		return fmt.Errorf("failed to build project for %s: %w", reference, err)
	}
	if err := r.projectRepo.Create(ctx, newProject); err != nil {
		return err
	}

	allocation, err := project.NewAllocation(newProject.ID(), newGrant.ID())
	if err != nil {
		return fmt.Errorf("failed to build allocation for %s: %w", reference, err)
	}
	if err := r.allocationRepo.Create(ctx, allocation); err != nil {
		return err
	}

	if err := r.reconcileCategories(ctx, newProject.ID(), adapter); err != nil {
		return err
	}
	return r.reconcilePeople(ctx, newProject.ID(), adapter)
}

// Update overwrites the existing Grant and its Project in place, then
// runs the same category and people reconciliation as the create path.
// No rows are replaced; identifiers stay stable across imports.
func (r *Reconciler) Update(ctx context.Context, adapter *gtr.ProjectAdapter, reference string) error {
	if err := r.checkReference(adapter, reference); err != nil {
		return err
	}

	existingGrant, err := r.grantRepo.GetByReference(ctx, reference)
	if err != nil {
		return err
	}
	if existingGrant == nil {
		return fmt.Errorf("grant %s not found for update", reference)
	}

	allocation, err := r.allocationRepo.GetByGrantID(ctx, existingGrant.ID())
	if err != nil {
		return err
	}
	if allocation == nil {
		return fmt.Errorf("grant %s has no allocation", reference)
	}

	existingProject, err := r.projectRepo.GetByID(ctx, allocation.ProjectID())
	if err != nil {
		return err
	}
	if existingProject == nil {
		return fmt.Errorf("allocation for grant %s points at missing project %d", reference, allocation.ProjectID())
	}

	attrs, err := r.grantAttributes(ctx, adapter)
	if err != nil {
		return err
	}
	if err := existingGrant.Overwrite(attrs); err != nil {
		return fmt.Errorf("failed to overwrite grant %s: %w", reference, err)
	}
	if err := r.grantRepo.Update(ctx, existingGrant); err != nil {
		return err
	}

	if err := existingProject.Overwrite(projectAttributes(adapter, reference)); err != nil {
		return fmt.Errorf("failed to overwrite project for %s: %w", reference, err)
	}
	if err := r.projectRepo.Update(ctx, existingProject); err != nil {
		return err
	}

	if err := r.reconcileCategories(ctx, existingProject.ID(), adapter); err != nil {
		return err
	}
	return r.reconcilePeople(ctx, existingProject.ID(), adapter)
}

// checkReference verifies the external RCUK identifier against the
// reference that initiated the import. A mismatch means the search and
// the fetched record disagree, and nothing may be written.
func (r *Reconciler) checkReference(adapter *gtr.ProjectAdapter, reference string) error {
	identifiers := adapter.Identifiers(rcukIdentifierType)
	if len(identifiers) != 1 {
		return fmt.Errorf("expected exactly one %s identifier, got %d", rcukIdentifierType, len(identifiers))
	}
	if identifiers[0] != reference {
		return fmt.Errorf("external identifier %s does not match import reference %s", identifiers[0], reference)
	}
	return nil
}

// grantAttributes derives the grant field set from the adapted project
// and fund, resolving the funder to a locally loaded organisation.
func (r *Reconciler) grantAttributes(ctx context.Context, adapter *gtr.ProjectAdapter) (grant.Attributes, error) {
	status, err := gtr.MapStatus(adapter.Status())
	if err != nil {
		return grant.Attributes{}, err
	}

	fund := adapter.Fund()
	funder, err := r.organisationRepo.GetByRegistryID(ctx, fund.Funder().RegistryID())
	if err != nil {
		return grant.Attributes{}, err
	}
	if funder == nil {
		return grant.Attributes{}, fmt.Errorf("funder organisation %s is not loaded locally", fund.Funder().RegistryID())
	}

	return grant.Attributes{
		Title:        adapter.Title(),
		Abstract:     adapter.Abstract(),
		Publications: adapter.DOIs(),
		Duration:     fund.Duration(),
		Status:       status,
		TotalFunds:   fund.Amount(),
		Currency:     fund.Currency(),
		FunderID:     funder.ID(),
		LeadProject:  adapter.LeadProject(),
	}, nil
}

// projectAttributes mirrors the grant-facing fields onto the project.
// The access duration is derived inside the project aggregate: same
// lower bound, unbounded above.
func projectAttributes(adapter *gtr.ProjectAdapter, reference string) project.Attributes {
	return project.Attributes{
		Title:           adapter.Title(),
		Abstract:        adapter.Abstract(),
		Publications:    adapter.DOIs(),
		ProjectDuration: adapter.Fund().Duration(),
		GrantReference:  reference,
		LeadProject:     adapter.LeadProject(),
	}
}

// reconcileCategories upserts registry-sourced terms, resolves the
// incoming category identifier set and applies the minimal add/remove
// delta against the project's existing links.
func (r *Reconciler) reconcileCategories(ctx context.Context, projectID uint, adapter *gtr.ProjectAdapter) error {
	classifications := make([]gtr.Classification, 0, len(adapter.Topics())+len(adapter.Subjects()))
	classifications = append(classifications, adapter.Topics()...)
	classifications = append(classifications, adapter.Subjects()...)
	for _, classification := range classifications {
		if err := r.upsertTerm(ctx, classification); err != nil {
			return err
		}
	}

	incoming, err := r.resolveIncomingIdentifiers(adapter)
	if err != nil {
		return err
	}

	existing, err := r.categorisationRepo.ListByProjectID(ctx, projectID)
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		for _, identifier := range incoming {
			if isJunkIdentifier(identifier) {
				r.logger.Warnw("skipping junk category identifier", "identifier", identifier)
				continue
			}
			if err := r.linkTerm(ctx, projectID, identifier); err != nil {
				return err
			}
		}
		return nil
	}

	// Resolve each existing link's term identifier so both sides of the
	// diff speak the same vocabulary.
	existingByIdentifier := make(map[string]*category.Categorisation, len(existing))
	for _, link := range existing {
		term, err := r.termRepo.GetByID(ctx, link.TermID())
		if err != nil {
			return err
		}
		if term == nil {
			return fmt.Errorf("categorisation %d points at missing term %d", link.ID(), link.TermID())
		}
		existingByIdentifier[term.Identifier()] = link
	}

	incomingSet := make(map[string]bool, len(incoming))
	for _, identifier := range incoming {
		if isJunkIdentifier(identifier) {
			r.logger.Warnw("skipping junk category identifier", "identifier", identifier)
			continue
		}
		incomingSet[identifier] = true
		if _, linked := existingByIdentifier[identifier]; !linked {
			if err := r.linkTerm(ctx, projectID, identifier); err != nil {
				return err
			}
		}
	}

	for identifier, link := range existingByIdentifier {
		if !incomingSet[identifier] {
			if err := r.categorisationRepo.Delete(ctx, link.ID()); err != nil {
				return err
			}
			r.logger.Debugw("removed stale categorisation", "project_id", projectID, "identifier", identifier)
		}
	}

	return nil
}

// resolveIncomingIdentifiers builds the four candidate identifier lists
// (raw topics, raw subjects, mapped topics, mapped subjects) and
// concatenates them preserving first-seen order. Mapping misses on the
// strict tables are hard failures carrying the offending entry.
func (r *Reconciler) resolveIncomingIdentifiers(adapter *gtr.ProjectAdapter) ([]string, error) {
	var incoming []string
	seen := make(map[string]bool)
	appendUnique := func(identifier string) {
		if !seen[identifier] {
			seen[identifier] = true
			incoming = append(incoming, identifier)
		}
	}

	for _, topic := range adapter.Topics() {
		appendUnique(topic.ID)
	}
	for _, subject := range adapter.Subjects() {
		appendUnique(subject.ID)
	}
	for _, topic := range adapter.Topics() {
		mapped, ok := r.tables.Topic(topic.ID)
		if !ok {
			return nil, &gtr.UnmappedTopicError{ID: topic.ID, Label: topic.Label}
		}
		appendUnique(mapped)
	}
	for _, subject := range adapter.Subjects() {
		mapped, ok := r.tables.Subject(subject.ID)
		if !ok {
			return nil, &gtr.UnmappedSubjectError{ID: subject.ID, Label: subject.Label}
		}
		appendUnique(mapped)
	}

	return incoming, nil
}

// upsertTerm ensures a local term exists for one registry
// classification: found terms have their name, path and scheme
// refreshed; unknown ones are created under the fixed registry scheme.
func (r *Reconciler) upsertTerm(ctx context.Context, classification gtr.Classification) error {
	scheme, err := r.ensureGtrScheme(ctx)
	if err != nil {
		return err
	}
	path := gtrSchemeNamespace + category.PathSeparator + classification.ID

	term, err := r.termRepo.GetByIdentifier(ctx, classification.ID)
	if err != nil {
		return err
	}

	if term != nil {
		if err := term.Upsert(scheme.ID(), classification.Label, path); err != nil {
			return fmt.Errorf("failed to refresh term %s: %w", classification.ID, err)
		}
		return r.termRepo.Update(ctx, term)
	}

	newTerm, err := category.NewTerm(scheme.ID(), classification.ID, classification.Label, path)
	if err != nil {
		return fmt.Errorf("failed to build term %s: %w", classification.ID, err)
	}
	return r.termRepo.Create(ctx, newTerm)
}

// ensureGtrScheme loads or creates the scheme housing registry-sourced
// terms that no curated scheme claims.
func (r *Reconciler) ensureGtrScheme(ctx context.Context) (*category.Scheme, error) {
	scheme, err := r.schemeRepo.GetByNamespace(ctx, gtrSchemeNamespace)
	if err != nil {
		return nil, err
	}
	if scheme != nil {
		return scheme, nil
	}

	scheme, err = category.NewScheme(gtrSchemeNamespace, gtrSchemeName, []string{gtrSchemeNamespace}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry scheme: %w", err)
	}
	if err := r.schemeRepo.Create(ctx, scheme); err != nil {
		return nil, err
	}
	return scheme, nil
}

// linkTerm creates one categorisation row for the term with the given
// identifier. The term must already exist, either bulk-loaded or
// upserted earlier in this run.
func (r *Reconciler) linkTerm(ctx context.Context, projectID uint, identifier string) error {
	term, err := r.termRepo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}
	if term == nil {
		return fmt.Errorf("category term %s is not loaded locally", identifier)
	}

	link, err := category.NewCategorisation(projectID, term.ID())
	if err != nil {
		return fmt.Errorf("failed to build categorisation for term %s: %w", identifier, err)
	}
	return r.categorisationRepo.Create(ctx, link)
}

// reconcilePeople turns every adapted investigator into a participant,
// deduplicating Person rows by (first name, last name, organisation)
// and participant rows by (project, person, role), so re-imports never
// multiply memberships.
func (r *Reconciler) reconcilePeople(ctx context.Context, projectID uint, adapter *gtr.ProjectAdapter) error {
	for _, investigator := range adapter.Investigators() {
		if err := r.ensureParticipant(ctx, projectID, investigator, project.RolePrincipalInvestigator); err != nil {
			return err
		}
	}
	for _, investigator := range adapter.CoInvestigators() {
		if err := r.ensureParticipant(ctx, projectID, investigator, project.RoleCoInvestigator); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reconciler) ensureParticipant(ctx context.Context, projectID uint, adapted *gtr.PersonAdapter, role project.Role) error {
	employer, err := r.organisationRepo.GetByRegistryID(ctx, adapted.Employer().RegistryID())
	if err != nil {
		return err
	}
	if employer == nil {
		return fmt.Errorf("employer organisation %s is not loaded locally", adapted.Employer().RegistryID())
	}

	existing, err := r.personRepo.GetByNameAndOrganisation(ctx, adapted.FirstName(), adapted.LastName(), employer.ID())
	if err != nil {
		return err
	}

	if existing == nil {
		organisationID := employer.ID()
		existing, err = person.New(adapted.FirstName(), adapted.LastName(), adapted.ExternalID(), &organisationID)
		if err != nil {
			return fmt.Errorf("failed to build person %s %s: %w", adapted.FirstName(), adapted.LastName(), err)
		}
		if err := r.personRepo.Create(ctx, existing); err != nil {
			return err
		}
	}

	linked, err := r.participantRepo.GetByIdentity(ctx, projectID, existing.ID(), role)
	if err != nil {
		return err
	}
	if linked != nil {
		return nil
	}

	participant, err := project.NewParticipant(projectID, existing.ID(), role)
	if err != nil {
		return fmt.Errorf("failed to build participant: %w", err)
	}
	return r.participantRepo.Create(ctx, participant)
}

// isJunkIdentifier reports whether a category identifier is the "none"
// sentinel or a bare URL. Both are registry noise, skipped on every
// branch of the link diff.
func isJunkIdentifier(identifier string) bool {
	if identifier == junkNoneIdentifier {
		return true
	}
	if strings.Contains(identifier, "://") {
		if u, err := url.Parse(identifier); err == nil && u.Scheme != "" && u.Host != "" {
			return true
		}
	}
	return false
}
