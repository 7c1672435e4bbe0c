// Package wizard implements the query-builder state machine.
//
// The wizard incrementally collects a company (or several), a product, a
// coverage (or bare coverage name), and an info type, then synthesizes a
// natural-language question plus a template identifier. It is a pure state
// machine: transitions that need backend data return a LoadRequest value,
// the caller performs the fetch, and feeds the outcome back through Resolve.
// Every load carries the epoch it was issued against; stale results are
// discarded.
package wizard

import (
	"log/slog"
	"strings"

	"github.com/jason-dio-so/insurance-ontology-v3/internal/catalog"
	"github.com/jason-dio-so/insurance-ontology-v3/internal/models"
)

// Step identifies the wizard step currently presented to the user.
type Step string

const (
	StepCompanySelect      Step = "COMPANY_SELECT"
	StepProductSelect      Step = "PRODUCT_SELECT"
	StepCoverageSelect     Step = "COVERAGE_SELECT"
	StepCoverageNameSelect Step = "COVERAGE_NAME_SELECT"
	StepInfoTypeSelect     Step = "INFO_TYPE_SELECT"
)

// Mode is the wizard branch. It is decided when the user advances past
// company selection and cleared again when they back into it.
type Mode string

const (
	ModeUndecided Mode = "UNDECIDED"
	ModeSingle    Mode = "SINGLE"
	ModeCompare   Mode = "COMPARE"
)

// LoadKind names the option tier a LoadRequest fetches.
type LoadKind string

const (
	LoadCompanies     LoadKind = "companies"
	LoadProducts      LoadKind = "products"
	LoadCoverages     LoadKind = "coverages"
	LoadCoverageNames LoadKind = "coverage_names"
)

// LoadRequest describes one asynchronous option fetch. Epoch ties the
// eventual result back to the state it was issued against.
type LoadRequest struct {
	Kind    LoadKind
	Company string
	Product string
	Epoch   int
}

// LoadResult carries the payload of a finished load; only the field
// matching the request kind is read.
type LoadResult struct {
	Companies     []models.Company
	Products      []string
	Coverages     []models.Coverage
	CoverageNames []string
}

// Selection is the wizard's working set. It is treated as an immutable
// value: transitions replace it wholly, and back-navigation rebuilds it
// from the kept prefix so downstream state cannot survive a regression.
type Selection struct {
	Companies    []models.Company
	SelectAll    bool
	Product      string
	Coverage     *models.Coverage
	CoverageName string
	InfoType     *catalog.InfoType
}

/// Query is the wizard's sole output: the synthesized question and the
// template identifier describing how it was built.
type Query struct {
	Text       string
	TemplateID string
}

// MaxCoverageNameResults caps the displayed coverage-name search results.
const MaxCoverageNameResults = 50

// Builder is the wizard state machine. Not safe for concurrent use; it is
// driven from a single event loop.
type Builder struct {
	step        Step
	mode        Mode
	preselected *catalog.InfoType

	companies     []models.Company
	products      []string
	coverages     []models.Coverage
	coverageNames []string

	sel Selection

	loading  bool
	lastKind LoadKind
	err      error
	epoch    int
	done     bool
}

// New creates a wizard. A non-nil preselected info type shortens the step
// sequence: the info-type step is skipped and the selection is fixed.
func New(preselected *catalog.InfoType) *Builder {
	b := &Builder{
		step:        StepCompanySelect,
		mode:        ModeUndecided,
		preselected: preselected,
	}
	if preselected != nil {
		it := *preselected
		b.sel.InfoType = &it
	}
	slog.Debug("wizard created", "preselected", preselected != nil)
	return b
}

// Start issues the initial company-list load.
func (b *Builder) Start() LoadRequest {
	b.epoch++
	b.loading = true
	b.lastKind = LoadCompanies
	b.err = nil
	return LoadRequest{Kind: LoadCompanies, Epoch: b.epoch}
}

// Resolve applies the outcome of a load. Results from a superseded epoch
// are discarded: the state they were issued against no longer exists.
func (b *Builder) Resolve(req LoadRequest, res LoadResult, err error) {
	if req.Epoch != b.epoch || !b.loading {
		slog.Debug("wizard discarding stale load result", "kind", req.Kind, "epoch", req.Epoch, "current", b.epoch)
		return
	}
	b.loading = false
	if err != nil {
		slog.Error("wizard load failed", "kind", req.Kind, "error", err)
		b.err = err
		return
	}
	b.err = nil
	switch req.Kind {
	case LoadCompanies:
		b.companies = res.Companies
	case LoadProducts:
		b.products = res.Products
		b.mode = ModeSingle
		b.step = StepProductSelect
	case LoadCoverages:
		b.coverages = res.Coverages
		b.step = StepCoverageSelect
	case LoadCoverageNames:
		b.coverageNames = res.CoverageNames
		b.mode = ModeCompare
		b.step = StepCoverageNameSelect
	}
	slog.Debug("wizard load applied", "kind", req.Kind, "step", b.step, "mode", b.mode)
}

// ToggleCompany flips one company in or out of the selection. Turning any
// individual company off clears the select-all flag; selecting every
// company individually sets it.
func (b *Builder) ToggleCompany(name string) error {
	if b.loading {
		return models.ErrBusy
	}
	if b.step != StepCompanySelect {
		return models.ErrNotReady
	}
	for i, c := range b.sel.Companies {
		if c.Name == name {
			next := b.sel
			next.Companies = append(append([]models.Company{}, b.sel.Companies[:i]...), b.sel.Companies[i+1:]...)
			next.SelectAll = false
			b.sel = next
			return nil
		}
	}
	company, ok := b.companyByName(name)
	if !ok {
		return models.ErrNotReady
	}
	next := b.sel
	next.Companies = append(append([]models.Company{}, b.sel.Companies...), company)
	next.SelectAll = len(next.Companies) == len(b.companies)
	b.sel = next
	return nil
}

// ToggleSelectAll selects every company, or clears the selection when the
// flag is already set. Equivalent to toggling each company individually.
func (b *Builder) ToggleSelectAll() error {
	if b.loading {
		return models.ErrBusy
	}
	if b.step != StepCompanySelect {
		return models.ErrNotReady
	}
	next := b.sel
	if b.sel.SelectAll {
		next.Companies = nil
		next.SelectAll = false
	} else {
		next.Companies = append([]models.Company{}, b.companies...)
		next.SelectAll = true
	}
	b.sel = next
	return nil
}

// Next advances past company selection. Exactly one selected company
// routes to the single-company branch; two or more route to compare mode.
// The mode itself is committed only once the staged load succeeds.
func (b *Builder) Next() (*LoadRequest, error) {
	if b.loading {
		return nil, models.ErrBusy
	}
	if b.step != StepCompanySelect {
		return nil, models.ErrNotReady
	}
	switch n := len(b.sel.Companies); {
	case n == 0:
		return nil, models.ErrNoCompanySelected
	case n == 1:
		return b.beginLoad(LoadRequest{Kind: LoadProducts, Company: b.sel.Companies[0].Name}), nil
	default:
		return b.beginLoad(LoadRequest{Kind: LoadCoverageNames}), nil
	}
}

// ChooseProduct commits a product and stages the coverage load for it.
// Re-choosing a product discards any previously selected coverage.
func (b *Builder) ChooseProduct(name string) (*LoadRequest, error) {
	if b.loading {
		return nil, models.ErrBusy
	}
	if b.step != StepProductSelect {
		return nil, models.ErrNotReady
	}
	next := b.sel
	next.Product = name
	next.Coverage = nil
	b.sel = next
	return b.beginLoad(LoadRequest{
		Kind:    LoadCoverages,
		Company: b.sel.Companies[0].Name,
		Product: name,
	}), nil
}

// ChooseCoverage commits a coverage by name from the loaded options. With a
// preselected info type the wizard becomes submit-ready; otherwise it moves
// on to info-type selection.
func (b *Builder) ChooseCoverage(coverageName string) error {
	if b.loading {
		return models.ErrBusy
	}
	if b.step != StepCoverageSelect {
		return models.ErrNotReady
	}
	for _, c := range b.coverages {
		if c.CoverageName == coverageName {
			cov := c
			next := b.sel
			next.Coverage = &cov
			b.sel = next
			if b.preselected == nil {
				b.step = StepInfoTypeSelect
			}
			return nil
		}
	}
	return models.ErrNotReady
}

// ChooseCoverageName commits a bare coverage name in compare mode.
func (b *Builder) ChooseCoverageName(name string) error {
	if b.loading {
		return models.ErrBusy
	}
	if b.step != StepCoverageNameSelect {
		return models.ErrNotReady
	}
	next := b.sel
	next.CoverageName = name
	b.sel = next
	if b.preselected == nil {
		b.step = StepInfoTypeSelect
	}
	return nil
}

// ChooseInfoType commits the info type.
func (b *Builder) ChooseInfoType(id string) error {
	if b.loading {
		return models.ErrBusy
	}
	if b.step != StepInfoTypeSelect {
		return models.ErrNotReady
	}
	it, ok := catalog.InfoTypeByID(id)
	if !ok {
		return models.ErrNotReady
	}
	next := b.sel
	next.InfoType = &it
	b.sel = next
	return nil
}

// Back moves to the previous step, discarding every selection captured at
// or after the step being left. Backing into company selection also clears
// the mode, reverting to the undecided state. A load in flight is
// abandoned by bumping the epoch.
func (b *Builder) Back() {
	if b.loading {
		b.loading = false
		b.epoch++
	}
	b.err = nil
	switch b.step {
	case StepProductSelect:
		// Product was captured at this step; the company set survives so the
		// user may adjust it and pick a different mode.
		b.sel = Selection{Companies: b.sel.Companies, SelectAll: b.sel.SelectAll, InfoType: b.presetInfoType()}
		b.mode = ModeUndecided
		b.products = nil
		b.step = StepCompanySelect
	case StepCoverageSelect:
		b.sel = Selection{Companies: b.sel.Companies, SelectAll: b.sel.SelectAll, Product: b.sel.Product, InfoType: b.presetInfoType()}
		b.coverages = nil
		b.step = StepProductSelect
	case StepCoverageNameSelect:
		b.sel = Selection{Companies: b.sel.Companies, SelectAll: b.sel.SelectAll, InfoType: b.presetInfoType()}
		b.mode = ModeUndecided
		b.coverageNames = nil
		b.step = StepCompanySelect
	case StepInfoTypeSelect:
		sel := b.sel
		sel.InfoType = b.presetInfoType()
		b.sel = sel
		if b.mode == ModeCompare {
			b.step = StepCoverageNameSelect
		} else {
			b.step = StepCoverageSelect
		}
	}
	slog.Debug("wizard back", "step", b.step, "mode", b.mode)
}

// Retry re-issues the load that last failed, re-derived from the committed
// selection state rather than replayed from the failed attempt.
func (b *Builder) Retry() *LoadRequest {
	if b.loading {
		return nil
	}
	b.err = nil
	switch {
	case b.companies == nil:
		return b.beginLoad(LoadRequest{Kind: LoadCompanies})
	case b.step == StepCompanySelect && len(b.sel.Companies) == 1:
		return b.beginLoad(LoadRequest{Kind: LoadProducts, Company: b.sel.Companies[0].Name})
	case b.step == StepCompanySelect && len(b.sel.Companies) >= 2:
		return b.beginLoad(LoadRequest{Kind: LoadCoverageNames})
	case b.step == StepProductSelect && b.sel.Product != "":
		return b.beginLoad(LoadRequest{
			Kind:    LoadCoverages,
			Company: b.sel.Companies[0].Name,
			Product: b.sel.Product,
		})
	default:
		return nil
	}
}

// SearchCoverageNames filters the compare-mode coverage-name catalog with a
// case-insensitive substring match. The returned slice is capped at
// MaxCoverageNameResults; total is the uncapped match count. The catalog
// itself is never mutated.
func (b *Builder) SearchCoverageNames(term string) (matches []string, total int) {
	term = strings.ToLower(strings.TrimSpace(term))
	for _, name := range b.coverageNames {
		if term != "" && !strings.Contains(strings.ToLower(name), term) {
			continue
		}
		total++
		if len(matches) < MaxCoverageNameResults {
			matches = append(matches, name)
		}
	}
	return matches, total
}

// CanSubmit reports whether every field required by the active mode is set.
func (b *Builder) CanSubmit() bool {
	return b.validate() == nil
}

// Submit validates the selection and emits the synthesized query exactly
// once. After a successful submit the wizard is done and rejects further
// submits.
func (b *Builder) Submit() (Query, error) {
	if b.done {
		return Query{}, models.ErrNotReady
	}
	if err := b.validate(); err != nil {
		return Query{}, err
	}
	q := Synthesize(b.mode, b.sel)
	b.done = true
	slog.Info("wizard submitted", "template_id", q.TemplateID)
	return q, nil
}

func (b *Builder) validate() error {
	switch b.mode {
	case ModeSingle:
		if len(b.sel.Companies) != 1 || b.sel.Product == "" || b.sel.Coverage == nil || b.sel.InfoType == nil {
			return models.ErrIncompleteSelection
		}
	case ModeCompare:
		if len(b.sel.Companies) == 0 || b.sel.CoverageName == "" || b.sel.InfoType == nil {
			return models.ErrIncompleteSelection
		}
	default:
		return models.ErrIncompleteSelection
	}
	return nil
}

func (b *Builder) beginLoad(req LoadRequest) *LoadRequest {
	b.epoch++
	b.loading = true
	b.lastKind = req.Kind
	b.err = nil
	req.Epoch = b.epoch
	return &req
}

func (b *Builder) companyByName(name string) (models.Company, bool) {
	for _, c := range b.companies {
		if c.Name == name {
			return c, true
		}
	}
	return models.Company{}, false
}

// presetInfoType returns a fresh copy of the preselected info type, or nil.
// The preselection survives back-navigation because it was never captured
// at a wizard step.
func (b *Builder) presetInfoType() *catalog.InfoType {
	if b.preselected == nil {
		return nil
	}
	it := *b.preselected
	return &it
}

// CurrentStep returns the step presented to the user.
func (b *Builder) CurrentStep() Step { return b.step }

// CurrentMode returns the active branch.
func (b *Builder) CurrentMode() Mode { return b.mode }

// Loading reports whether an option load is in flight.
func (b *Builder) Loading() bool { return b.loading }

// Err returns the last load failure, or nil.
func (b *Builder) Err() error { return b.err }

// LastLoadKind returns the kind of the most recently issued load.
func (b *Builder) LastLoadKind() LoadKind { return b.lastKind }

// Done reports whether the wizard has emitted its query.
func (b *Builder) Done() bool { return b.done }

// Companies returns the loaded company options.
func (b *Builder) Companies() []models.Company { return b.companies }

// Products returns the loaded product options.
func (b *Builder) Products() []string { return b.products }

// Coverages returns the loaded coverage options.
func (b *Builder) Coverages() []models.Coverage { return b.coverages }

// Selected returns a copy of the current working selection.
func (b *Builder) Selected() Selection {
	sel := b.sel
	sel.Companies = append([]models.Company{}, b.sel.Companies...)
	if b.sel.Coverage != nil {
		cov := *b.sel.Coverage
		sel.Coverage = &cov
	}
	if b.sel.InfoType != nil {
		it := *b.sel.InfoType
		sel.InfoType = &it
	}
	return sel
}
