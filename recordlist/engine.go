package recordlist

import (
	"context"
	"fmt"

	"github.com/ncobase/recordlist/clipboard"
	"github.com/ncobase/recordlist/config"
	"github.com/ncobase/recordlist/logger"
	"github.com/ncobase/recordlist/store"
)

// Control action identifiers emitted on listing rows.
const (
	ActionEdit     = "edit"
	ActionDelete   = "delete"
	ActionRestore  = "restore"
	ActionHide     = "hide"
	ActionUnhide   = "unhide"
	ActionMoveUp   = "moveUp"
	ActionMoveDown = "moveDown"
	ActionNewAfter = "newAfter"
	ActionShowInfo = "showInfo"
)

// Control is one offered row action. Move actions carry the decoded target.
type Control struct {
	Action  string         `json:"action"`
	Label   string         `json:"label"`
	Move    *MoveTarget    `json:"move,omitempty"`
	Warning *DeleteWarning `json:"warning,omitempty"`
}

// DeleteWarning carries the destructive-count figures shown before a record
// is deleted. Restore actions never carry one.
type DeleteWarning struct {
	References   int `json:"references"`
	Translations int `json:"translations"`
}

// ClipPanel describes the clipboard cell of one row. On the normal pad the
// row shows copy and cut toggles; on a numbered pad it shows a checkbox.
type ClipPanel struct {
	Numbered     bool `json:"numbered"`
	CopySelected bool `json:"copy_selected"`
	CutSelected  bool `json:"cut_selected"`
	Checked      bool `json:"checked"`
	PasteAfter   bool `json:"paste_after"`
	PasteInto    bool `json:"paste_into"`
}

// Language is one language a site offers records in.
type Language struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// RowModel is one rendered listing row.
type RowModel struct {
	Uid       int            `json:"uid"`
	Pid       int            `json:"pid"`
	Title     string         `json:"title"`
	Fields    map[string]any `json:"fields"`
	Deleted   bool           `json:"deleted"`
	Hidden    bool           `json:"hidden"`
	Duplicate bool           `json:"duplicate,omitempty"`
	Controls  []Control      `json:"controls"`
	Clip      *ClipPanel     `json:"clip,omitempty"`

	// Translations are rendered directly beneath their default-language
	// source row; NewTranslations offers the languages still missing.
	Translations    []RowModel `json:"translations,omitempty"`
	NewTranslations []Language `json:"new_translations,omitempty"`
}

// TableModel is the rendered listing of a single table.
type TableModel struct {
	Table       string     `json:"table"`
	Label       string     `json:"label"`
	Header      []string   `json:"header"`
	Rows        []RowModel `json:"rows"`
	FirstIndex  int        `json:"first_index"`
	PageSize    int        `json:"page_size"`
	TotalCount  int        `json:"total_count"`
	CurrentPage int        `json:"current_page"`
	PageCount   int        `json:"page_count"`
	HasPrev     bool       `json:"has_prev"`
	HasNext     bool       `json:"has_next"`
	Siblings    *Siblings  `json:"siblings,omitempty"`
}

// ListRequest selects what a listing call produces. Clip is the requesting
// session's clipboard; nil hides the clipboard column.
type ListRequest struct {
	Table  string
	Scope  store.Scope
	Filter store.Filter
	Sort   store.Sort
	Offset int
	Limit  int
	Fields []string
	Clip   *clipboard.Clipboard
}

// Engine turns windows of stored rows into renderable table models.
type Engine struct {
	Pager     *Pager
	Perms     store.Permissions
	Languages []Language
	Cfg       *config.List
}

// NewEngine wires an engine over a record store.
func NewEngine(st store.RecordStore, schemas store.Schemas, perms store.Permissions, cfg *config.List) *Engine {
	if cfg == nil {
		cfg = &config.List{ItemsPerPage: 100, ItemsPerPageCollapsed: 20}
	}
	return &Engine{
		Pager: &Pager{Store: st, Schemas: schemas},
		Perms: perms,
		Cfg:   cfg,
	}
}

// ListTable renders one table of the current page. A zero limit falls back
// to the configured page size; a negative limit lists everything.
func (e *Engine) ListTable(ctx context.Context, req *ListRequest) (*TableModel, error) {
	schema, ok := e.Pager.Schemas.Get(req.Table)
	if !ok {
		return nil, fmt.Errorf("unknown table %q: %w", req.Table, store.ErrNotFound)
	}

	limit := req.Limit
	if limit == 0 {
		limit = e.Cfg.ItemsPerPage
	}

	// Translations render beneath their source row, not as rows of
	// their own.
	filter := languageFilter(schema, req.Filter)

	w, sib, err := e.Pager.Fetch(ctx, req.Table, req.Scope, filter, req.Sort, req.Offset, limit)
	if err != nil {
		return nil, err
	}
	logger.Debugf(ctx, "listed %s: %d of %d rows from %d", req.Table, len(w.Rows), w.TotalCount, w.FirstIndex)

	manualOrder := schema.SortField != "" && req.Sort.Field == "" && req.Scope.Search == ""

	dupes := map[any]int{}
	if schema.DuplicateField != "" {
		for _, row := range w.Rows {
			dupes[row.Fields[schema.DuplicateField]]++
		}
	}

	model := &TableModel{
		Table:       req.Table,
		Label:       schema.Label,
		Header:      e.header(schema, req.Fields),
		FirstIndex:  w.FirstIndex,
		PageSize:    w.PageSize,
		TotalCount:  w.TotalCount,
		CurrentPage: 1,
		PageCount:   1,
		HasPrev:     w.HasPrev(),
		HasNext:     w.HasNext(),
		Siblings:    sib,
		Rows:        make([]RowModel, 0, len(w.Rows)),
	}
	if w.PageSize > 0 {
		model.CurrentPage = w.FirstIndex/w.PageSize + 1
		model.PageCount = (w.TotalCount + w.PageSize - 1) / w.PageSize
		if model.PageCount < 1 {
			model.PageCount = 1
		}
	}

	for _, row := range w.Rows {
		rm := e.makeRow(schema, row, model.Header)
		rm.Controls = e.makeControl(ctx, schema, row, sib, manualOrder)
		if req.Clip != nil {
			rm.Clip = e.makeClip(schema, row, req.Clip)
		}
		if schema.DuplicateField != "" {
			rm.Duplicate = dupes[row.Fields[schema.DuplicateField]] > 1
		}
		if schema.LanguageField != "" && languageOf(schema, row) == 0 {
			e.attachTranslations(ctx, schema, &rm, req)
		}
		model.Rows = append(model.Rows, rm)
	}
	return model, nil
}

// ListPage renders every listable table that has records on the page.
func (e *Engine) ListPage(ctx context.Context, scope store.Scope, limit int, clip *clipboard.Clipboard) ([]*TableModel, error) {
	var out []*TableModel
	for _, name := range e.Pager.Schemas.Names() {
		req := &ListRequest{Table: name, Scope: scope, Limit: limit, Clip: clip}
		tm, err := e.ListTable(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("list table %s: %w", name, err)
		}
		if tm.TotalCount == 0 {
			continue
		}
		out = append(out, tm)
	}
	return out, nil
}

func (e *Engine) header(schema store.Schema, requested []string) []string {
	if len(requested) == 0 {
		return []string{schema.TitleField}
	}
	out := make([]string, 0, len(requested))
	for _, f := range requested {
		if schema.HasField(f) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		out = []string{schema.TitleField}
	}
	return out
}

func (e *Engine) makeRow(schema store.Schema, row store.Row, header []string) RowModel {
	fields := make(map[string]any, len(header))
	for _, f := range header {
		fields[f] = row.Fields[f]
	}
	rm := RowModel{
		Uid:    row.Uid,
		Pid:    row.Pid,
		Title:  fmt.Sprint(row.Fields[schema.TitleField]),
		Fields: fields,
	}
	if schema.DisabledField != "" {
		rm.Hidden = truthy(row.Fields[schema.DisabledField])
	}
	if schema.DeleteStateField != "" {
		rm.Deleted = truthy(row.Fields[schema.DeleteStateField])
	}
	return rm
}

// makeControl assembles the per-row action set. Move actions only appear when
// the listing runs in the table's native manual order, since reordering a
// searched or re-sorted view is meaningless.
func (e *Engine) makeControl(ctx context.Context, schema store.Schema, row store.Row, sib *Siblings, manualOrder bool) []Control {
	var out []Control

	out = append(out, Control{Action: ActionShowInfo, Label: "Show information"})

	if !schema.ReadOnly && e.Perms.CanEdit(schema.Name, row) {
		out = append(out, Control{Action: ActionEdit, Label: "Edit record"})
	}

	if schema.DisabledField != "" && e.Perms.CanEditField(schema.Name, schema.DisabledField) {
		if truthy(row.Fields[schema.DisabledField]) {
			out = append(out, Control{Action: ActionUnhide, Label: "Unhide"})
		} else {
			out = append(out, Control{Action: ActionHide, Label: "Hide"})
		}
	}

	if manualOrder {
		if t, ok := sib.PrevOf[row.Uid]; ok {
			mt := DecodeMoveTarget(t)
			out = append(out, Control{Action: ActionMoveUp, Label: "Move up", Move: &mt})
		}
		if t, ok := sib.NextOf[row.Uid]; ok {
			mt := DecodeMoveTarget(t)
			out = append(out, Control{Action: ActionMoveDown, Label: "Move down", Move: &mt})
		}
	}

	if schema.SortField != "" || schema.UseColumnsForDefaultValues {
		if e.Perms.CanCreateAt(row.Pid) {
			out = append(out, Control{Action: ActionNewAfter, Label: "Create new record after this one"})
		}
	}

	if e.Perms.CanDelete(schema.Name, row) {
		if schema.DeleteStateField != "" && truthy(row.Fields[schema.DeleteStateField]) {
			out = append(out, Control{Action: ActionRestore, Label: "Restore"})
		} else {
			out = append(out, Control{Action: ActionDelete, Label: "Delete record", Warning: e.deleteWarning(ctx, schema, row)})
		}
	}
	return out
}

// deleteWarning collects the counts shown in the delete confirmation. A
// failing count degrades to no warning rather than failing the listing.
func (e *Engine) deleteWarning(ctx context.Context, schema store.Schema, row store.Row) *DeleteWarning {
	refs, err := e.Pager.Store.CountReferences(ctx, schema.Name, row.Uid)
	if err != nil {
		logger.Warnf(ctx, "count references of %s:%d: %v", schema.Name, row.Uid, err)
		return nil
	}
	trans := 0
	if schema.TranslationParentField != "" {
		filter := store.Filter{schema.TranslationParentField: row.Uid}
		trans, err = e.Pager.Store.Count(ctx, schema.Name, store.Scope{PageID: row.Pid}, filter)
		if err != nil {
			logger.Warnf(ctx, "count translations of %s:%d: %v", schema.Name, row.Uid, err)
			return nil
		}
	}
	if refs == 0 && trans == 0 {
		return nil
	}
	return &DeleteWarning{References: refs, Translations: trans}
}

// makeClip builds the clipboard cell. Paste-after is only offered when the
// pad carries elements of this table and the table is manually sortable;
// paste-into is offered whenever the pad holds anything at all.
func (e *Engine) makeClip(schema store.Schema, row store.Row, clip *clipboard.Clipboard) *ClipPanel {
	cp := &ClipPanel{Numbered: clip.Current != clipboard.PadNormal}
	ref := clipboard.Ref{Table: schema.Name, Uid: row.Uid}
	switch op := clip.IsSelected(ref); {
	case cp.Numbered:
		cp.Checked = op != clipboard.OpNone
	case op == clipboard.OpCopy:
		cp.CopySelected = true
	case op == clipboard.OpCut:
		cp.CutSelected = true
	}
	if schema.SortField != "" && len(clip.ElementsFromTable(schema.Name)) > 0 {
		cp.PasteAfter = true
	}
	if len(clip.ElementsFromTable("")) > 0 {
		cp.PasteInto = true
	}
	return cp
}

// attachTranslations renders existing translations of a default-language row
// beneath it and offers creating the ones that are still missing.
func (e *Engine) attachTranslations(ctx context.Context, schema store.Schema, rm *RowModel, req *ListRequest) {
	if schema.TranslationParentField == "" {
		return
	}
	filter := store.Filter{schema.TranslationParentField: rm.Uid}
	rows, err := e.Pager.Store.FetchWindow(ctx, schema.Name, store.Scope{PageID: req.Scope.PageID}, filter, store.Sort{Field: schema.LanguageField}, 0, 0)
	if err != nil {
		logger.Warnf(ctx, "fetch translations of %s:%d: %v", schema.Name, rm.Uid, err)
		return
	}

	have := map[int]bool{0: true}
	header := e.header(schema, req.Fields)
	for _, row := range rows {
		lang := languageOf(schema, row)
		have[lang] = true
		if !e.Perms.CanAccessLanguage(lang) {
			continue
		}
		tr := e.makeRow(schema, row, header)
		tr.Controls = e.makeControl(ctx, schema, row, newSiblings(), false)
		rm.Translations = append(rm.Translations, tr)
	}
	for _, lang := range e.Languages {
		if lang.ID <= 0 || have[lang.ID] || !e.Perms.CanAccessLanguage(lang.ID) {
			continue
		}
		rm.NewTranslations = append(rm.NewTranslations, lang)
	}
}

// languageFilter restricts a listing to default-language records when the
// table is localized.
func languageFilter(schema store.Schema, filter store.Filter) store.Filter {
	if schema.LanguageField == "" {
		return filter
	}
	f := make(store.Filter, len(filter)+1)
	for k, v := range filter {
		f[k] = v
	}
	f[schema.LanguageField] = 0
	return f
}

func languageOf(schema store.Schema, row store.Row) int {
	switch v := row.Fields[schema.LanguageField].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	case string:
		return x != "" && x != "0"
	}
	return false
}
