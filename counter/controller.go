package counter

import (
	"errors"
	"net/http"
	"net/url"

	c "github.com/d0ngw/hitcounter/common"
	h "github.com/d0ngw/hitcounter/http"
)

// Version of the counter service
const Version = "1.0.0"

const collectionPath = "/counters"

type healthResp struct {
	Status string `json:"status"`
}

type indexResp struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
	URL     string `json:"url"`
}

// Controller maps the counter resource onto the Store
type Controller struct {
	h.BaseController
	Store Store
}

// NewController create the counter controller which serves the routes of store
func NewController(store Store) *Controller {
	return &Controller{
		BaseController: h.BaseController{
			Name: "counter",
			PatternMethods: map[string]string{
				"GET /health":             "Health",
				"GET /{$}":                "Index",
				"GET /counters":           "List",
				"POST /counters/{name}":   "Create",
				"GET /counters/{name}":    "Read",
				"PUT /counters/{name}":    "Update",
				"DELETE /counters/{name}": "Delete",
			},
		},
		Store: store,
	}
}

// Health the health check
func (p *Controller) Health(w http.ResponseWriter, r *http.Request) {
	h.RenderJSON(w, &healthResp{Status: "OK"})
}

// Index the service metadata
func (p *Controller) Index(w http.ResponseWriter, r *http.Request) {
	c.Infof("Request for Base URL")
	h.RenderJSON(w, &indexResp{
		Status:  http.StatusOK,
		Message: "Hit Counter Service",
		Version: Version,
		URL:     h.AbsoluteURL(r, collectionPath),
	})
}

// List all counters
func (p *Controller) List(w http.ResponseWriter, r *http.Request) {
	c.Infof("Request to list all counters...")
	h.RenderJSON(w, p.Store.List())
}

// Create a counter
func (p *Controller) Create(w http.ResponseWriter, r *http.Request) error {
	name := r.PathValue("name")
	c.Infof("Request to Create counter: %s...", name)

	val, err := p.Store.Create(name)
	if err != nil {
		return storeError(name, err)
	}
	w.Header().Set("Location", h.AbsoluteURL(r, collectionPath+"/"+url.PathEscape(name)))
	h.RenderJSONWithStatus(w, http.StatusCreated, &Entry{Name: name, Counter: val})
	return nil
}

// Read a counter
func (p *Controller) Read(w http.ResponseWriter, r *http.Request) error {
	name := r.PathValue("name")
	c.Infof("Request to Read counter: %s...", name)

	val, err := p.Store.Get(name)
	if err != nil {
		return storeError(name, err)
	}
	h.RenderJSON(w, &Entry{Name: name, Counter: val})
	return nil
}

// Update increase the counter by 1
func (p *Controller) Update(w http.ResponseWriter, r *http.Request) error {
	name := r.PathValue("name")
	c.Infof("Request to Update counter: %s...", name)

	val, err := p.Store.Incr(name)
	if err != nil {
		return storeError(name, err)
	}
	h.RenderJSON(w, &Entry{Name: name, Counter: val})
	return nil
}

// Delete a counter, always 204 whether it existed or not
func (p *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	c.Infof("Request to Delete counter: %s...", name)

	p.Store.Del(name)
	h.RenderNoContent(w)
}

func storeError(name string, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return h.WrapStatusError(http.StatusNotFound, err, "Counter %s does not exist", name)
	case errors.Is(err, ErrAlreadyExists):
		return h.WrapStatusError(http.StatusConflict, err, "Counter %s already exists", name)
	}
	return err
}
