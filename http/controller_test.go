package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type DemoController struct {
	BaseController
	calls []string
}

func (p *DemoController) Index(w http.ResponseWriter, r *http.Request) {
	p.calls = append(p.calls, "index")
}

func (p *DemoController) SecondPage(w http.ResponseWriter, r *http.Request) error {
	p.calls = append(p.calls, "second_page")
	return errors.New("second fail")
}

func (p *DemoController) NotHandler(name string) string {
	return name
}

func TestReflectHandlers(t *testing.T) {
	controller := &DemoController{
		BaseController: BaseController{
			Name: "demo",
			Path: "/demo",
		},
	}

	mapping, err := ReflectHandlers(controller)
	require.NoError(t, err)
	assert.EqualValues(t, 2, len(mapping))

	r := httptest.NewRequest(http.MethodGet, "/demo/index", nil)
	mapping["/demo/index"](httptest.NewRecorder(), r)
	w := httptest.NewRecorder()
	mapping["/demo/second_page"](w, r)
	assert.Equal(t, []string{"index", "second_page"}, controller.calls)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestReflectHandlersWithPatterns(t *testing.T) {
	controller := &DemoController{
		BaseController: BaseController{
			Name: "demo",
			PatternMethods: map[string]string{
				"GET /demo/{id}": "Index",
				"POST /demo":     "SecondPage",
			},
		},
	}
	mapping, err := ReflectHandlers(controller)
	require.NoError(t, err)
	assert.Len(t, mapping, 2)
	assert.Contains(t, mapping, "GET /demo/{id}")
	assert.Contains(t, mapping, "POST /demo")

	controller.PatternMethods = map[string]string{"GET /x": "Missing"}
	_, err = ReflectHandlers(controller)
	assert.Error(t, err)

	controller.PatternMethods = map[string]string{"GET /x": "NotHandler"}
	_, err = ReflectHandlers(controller)
	assert.Error(t, err)

	_, err = ReflectHandlers(nil)
	assert.Error(t, err)
}

func TestToUnderlineName(t *testing.T) {
	assert.EqualValues(t, "index", ToUnderlineName("index"))
	assert.EqualValues(t, "index", ToUnderlineName("INDEX"))
	assert.EqualValues(t, "index", ToUnderlineName("Index"))
	assert.EqualValues(t, "in_dex", ToUnderlineName("InDex"))
	assert.EqualValues(t, "in_dex", ToUnderlineName("InDEX"))
	assert.EqualValues(t, "in_dex", ToUnderlineName("InDEx"))
	assert.EqualValues(t, "in_de_x", ToUnderlineName("InDeX"))
	assert.EqualValues(t, "in语言de_x", ToUnderlineName("In语言DeX"))
	assert.EqualValues(t, "", ToUnderlineName(""))
}
