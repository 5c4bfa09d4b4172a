package router

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ncobase/recordlist/clipboard"
	"github.com/ncobase/recordlist/config"
	"github.com/ncobase/recordlist/ecode"
	"github.com/ncobase/recordlist/linkhandler"
	"github.com/ncobase/recordlist/logger"
	"github.com/ncobase/recordlist/recordlist"
	"github.com/ncobase/recordlist/resp"
	"github.com/ncobase/recordlist/store"
)

// Service bundles the collaborators the HTTP surface serves.
type Service struct {
	Engine   *recordlist.Engine
	Registry *linkhandler.Registry
	Browser  *config.Browser
	Clips    clipboard.Store
}

// New builds the gin engine with all routes registered.
func New(svc *Service) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), traceMiddleware())

	r.GET("/browse", svc.browse)
	r.GET("/list", svc.list)
	r.GET("/list/export", svc.export)

	cb := r.Group("/clipboard")
	cb.GET("", svc.clipboardState)
	cb.POST("/pad", svc.clipboardPad)
	cb.POST("/select", svc.clipboardSelect)
	cb.POST("/toggle", svc.clipboardToggle)
	cb.POST("/clear", svc.clipboardClear)

	return r
}

// traceMiddleware stamps every request context with a trace id so handler
// logs of one request correlate.
func traceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, traceID := logger.EnsureTraceID(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Trace-Id", traceID)
		c.Next()
	}
}

func (s *Service) browse(c *gin.Context) {
	sess := &linkhandler.Session{
		Registry:     s.Registry,
		Cfg:          s.Browser,
		CurrentLink:  c.Query("currentLink"),
		Act:          c.Query("act"),
		BParams:      c.Query("bparams"),
		ExpandPage:   intQuery(c, "expandPage"),
		ExpandFolder: c.Query("expandFolder"),
		Attributes: map[string]string{
			linkhandler.AttrTarget: c.Query("curTarget"),
			linkhandler.AttrTitle:  c.Query("curTitle"),
			linkhandler.AttrClass:  c.Query("curClass"),
			linkhandler.AttrParams: c.Query("curParams"),
		},
		Params: queryParams(c),
	}
	model, err := sess.Run(c.Request.Context())
	if err != nil {
		resp.FromError(c.Writer, err)
		return
	}
	resp.Success(c.Writer, model)
}

func (s *Service) list(c *gin.Context) {
	req, clipID, err := s.listRequest(c)
	if err != nil {
		resp.BadRequest(c.Writer, err.Error())
		return
	}
	ctx := c.Request.Context()

	var clip *clipboard.Clipboard
	if clipID != "" {
		if clip, err = s.Clips.Load(ctx, clipID); err != nil {
			resp.FromError(c.Writer, err)
			return
		}
		req.Clip = clip
	}

	if req.Table == "" {
		tables, err := s.Engine.ListPage(ctx, req.Scope, s.Engine.Cfg.ItemsPerPageCollapsed, clip)
		if err != nil {
			resp.FromError(c.Writer, err)
			return
		}
		resp.Success(c.Writer, gin.H{"tables": tables})
		return
	}

	tm, err := s.Engine.ListTable(ctx, req)
	if err != nil {
		resp.FromError(c.Writer, err)
		return
	}
	resp.Success(c.Writer, tm)
}

func (s *Service) export(c *gin.Context) {
	req, _, err := s.listRequest(c)
	if err != nil || req.Table == "" {
		resp.BadRequest(c.Writer, "table is required")
		return
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+req.Table+`.csv"`)
	if err := s.Engine.ExportCSV(c.Request.Context(), c.Writer, req); err != nil {
		logger.Errorf(c.Request.Context(), "csv export of %s failed: %v", req.Table, err)
	}
}

func (s *Service) listRequest(c *gin.Context) (*recordlist.ListRequest, string, error) {
	req := &recordlist.ListRequest{
		Table: c.Query("table"),
		Scope: store.Scope{
			PageID:       intQuery(c, "pid"),
			Search:       c.Query("search"),
			SearchLevels: intQuery(c, "searchLevels"),
		},
		Sort:   store.Sort{Field: c.Query("sortField"), Desc: c.Query("sortDesc") == "1"},
		Offset: intQuery(c, "offset"),
		Limit:  intQuery(c, "limit"),
	}
	if f := c.Query("fields"); f != "" {
		req.Fields = strings.Split(f, ",")
	}
	return req, c.Query("clip"), nil
}

type clipCommand struct {
	Session string `json:"session" binding:"required"`
	Pad     *int   `json:"pad"`
	Table   string `json:"table"`
	Uid     int    `json:"uid"`
	Op      string `json:"op"`
}

func (s *Service) clipboardState(c *gin.Context) {
	id := c.Query("session")
	if id == "" {
		id = clipboard.NewSessionID()
	}
	clip, err := s.Clips.Load(c.Request.Context(), id)
	if err != nil {
		resp.FromError(c.Writer, err)
		return
	}
	resp.Success(c.Writer, gin.H{"session": id, "clipboard": clip})
}

func (s *Service) clipboardPad(c *gin.Context) {
	s.mutateClipboard(c, func(cmd *clipCommand, clip *clipboard.Clipboard) error {
		if cmd.Pad == nil {
			return errParam("pad")
		}
		pad, err := clipboard.ParsePadID(*cmd.Pad)
		if err != nil {
			return err
		}
		return clip.SetCurrent(pad)
	})
}

func (s *Service) clipboardSelect(c *gin.Context) {
	s.mutateClipboard(c, func(cmd *clipCommand, clip *clipboard.Clipboard) error {
		if cmd.Table == "" || cmd.Uid == 0 {
			return errParam("table and uid")
		}
		ref := clipboard.Ref{Table: cmd.Table, Uid: cmd.Uid}
		switch cmd.Op {
		case "copy":
			clip.Select(ref, clipboard.OpCopy)
		case "cut":
			clip.Select(ref, clipboard.OpCut)
		case "release":
			clip.Deselect()
		default:
			return errParam("op")
		}
		return nil
	})
}

func (s *Service) clipboardToggle(c *gin.Context) {
	s.mutateClipboard(c, func(cmd *clipCommand, clip *clipboard.Clipboard) error {
		if cmd.Table == "" || cmd.Uid == 0 {
			return errParam("table and uid")
		}
		clip.Toggle(clipboard.Ref{Table: cmd.Table, Uid: cmd.Uid})
		return nil
	})
}

func (s *Service) clipboardClear(c *gin.Context) {
	var cmd clipCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		resp.BadRequest(c.Writer, err.Error())
		return
	}
	if err := s.Clips.Drop(c.Request.Context(), cmd.Session); err != nil {
		resp.FromError(c.Writer, err)
		return
	}
	resp.Success(c.Writer)
}

// mutateClipboard runs one load-mutate-save cycle over a session clipboard.
func (s *Service) mutateClipboard(c *gin.Context, mutate func(*clipCommand, *clipboard.Clipboard) error) {
	var cmd clipCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		resp.BadRequest(c.Writer, err.Error())
		return
	}
	ctx := c.Request.Context()
	clip, err := s.Clips.Load(ctx, cmd.Session)
	if err != nil {
		resp.FromError(c.Writer, err)
		return
	}
	if err := mutate(&cmd, clip); err != nil {
		resp.BadRequest(c.Writer, err.Error())
		return
	}
	if err := s.Clips.Save(ctx, cmd.Session, clip); err != nil {
		resp.FromError(c.Writer, err)
		return
	}
	resp.Success(c.Writer, gin.H{"clipboard": clip})
}

func errParam(what string) error {
	return &paramError{what: what}
}

type paramError struct{ what string }

func (e *paramError) Error() string { return ecode.FieldIsRequired(e.what) }

func intQuery(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}

// queryParams folds the repeatable p[...] query parameters into a loose bag.
func queryParams(c *gin.Context) linkhandler.P {
	p := linkhandler.P{}
	for key, vals := range c.Request.URL.Query() {
		if !strings.HasPrefix(key, "p[") || !strings.HasSuffix(key, "]") || len(vals) == 0 {
			continue
		}
		name := key[2 : len(key)-1]
		p[name] = vals[0]
	}
	return p
}
