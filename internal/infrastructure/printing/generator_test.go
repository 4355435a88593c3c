package printing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codewithomar/LPWC/internal/domain/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*RenderResult)
	return result, args.Error(1)
}

func (m *mockEngine) Close() error {
	return m.Called().Error(0)
}

type stubFactory struct {
	engine Engine
	err    error
	calls  int
}

func (f *stubFactory) New(context.Context) (Engine, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.engine, nil
}

func (f *stubFactory) Name() string { return "stub" }

func TestGenerator_Generate(t *testing.T) {
	fonts, err := NewFontRegistry(latinConfig(false), FontFace{Weight: 400, Data: goregular.TTF})
	require.NoError(t, err)

	engine := new(mockEngine)
	engine.On("Render", mock.Anything, mock.MatchedBy(func(req *RenderRequest) bool {
		return req.Page == label.LabelPage &&
			req.Margins == label.DefaultMargins() &&
			req.Title == label.FileName &&
			req.Timeout == 5*time.Second
	})).Return(&RenderResult{PDFData: []byte("%PDF-1.4")}, nil).Once()
	engine.On("Close").Return(nil).Once()

	factory := &stubFactory{engine: engine}
	gen := NewGenerator(factory, fonts, nil, WithRenderTimeout(5*time.Second))

	pdf, err := gen.Generate(context.Background(), "<html><head><title>x</title></head><body></body></html>")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	assert.Equal(t, 1, factory.calls)
	assert.Equal(t, "stub", gen.EngineName())
	engine.AssertExpectations(t)

	req := engine.Calls[0].Arguments.Get(1).(*RenderRequest)
	assert.Contains(t, req.HTML, "<head>\n<style>\n@font-face")
	assert.Contains(t, req.HTML, "<title>x</title>")
}

func TestGenerator_EngineFailure(t *testing.T) {
	engine := new(mockEngine)
	engine.On("Render", mock.Anything, mock.Anything).
		Return(nil, NewRenderError(ErrCodeRenderTimeout, "PDF rendering timed out", context.DeadlineExceeded))
	engine.On("Close").Return(nil).Once()

	gen := NewGenerator(&stubFactory{engine: engine}, nil, nil)
	pdf, err := gen.Generate(context.Background(), "<html><body></body></html>")

	assert.Nil(t, pdf)
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeRenderTimeout, renderErr.Code)
	engine.AssertCalled(t, "Close")
}

func TestGenerator_EmptyOutput(t *testing.T) {
	engine := new(mockEngine)
	engine.On("Render", mock.Anything, mock.Anything).Return(&RenderResult{}, nil)
	engine.On("Close").Return(errors.New("already closed"))

	gen := NewGenerator(&stubFactory{engine: engine}, nil, nil)
	pdf, err := gen.Generate(context.Background(), "<html></html>")

	assert.Nil(t, pdf)
	assert.Error(t, err)
}

func TestGenerator_FactoryError(t *testing.T) {
	gen := NewGenerator(&stubFactory{err: errors.New("no chrome")}, nil, nil)
	pdf, err := gen.Generate(context.Background(), "<html></html>")

	assert.Nil(t, pdf)
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeRenderFailed, renderErr.Code)
}

func TestGenerator_FreshEnginePerCall(t *testing.T) {
	engine := new(mockEngine)
	engine.On("Render", mock.Anything, mock.Anything).Return(&RenderResult{PDFData: []byte("%PDF")}, nil)
	engine.On("Close").Return(nil)

	factory := &stubFactory{engine: engine}
	gen := NewGenerator(factory, nil, nil)
	for range 3 {
		_, err := gen.Generate(context.Background(), "<html></html>")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, factory.calls)
	engine.AssertNumberOfCalls(t, "Close", 3)
}

func TestGenerator_InjectFonts(t *testing.T) {
	fonts := &FontRegistry{family: "f", stylesheet: "@font-face {}\n"}
	gen := NewGenerator(&stubFactory{}, fonts, nil)

	assert.Equal(t, "<html><head>\n<style>\n@font-face {}\n</style>\n</head></html>",
		gen.injectFonts("<html><head></head></html>"))
	assert.Equal(t, "<html><head>\n<style>\n@font-face {}\n</style>\n</head><body></body></html>",
		gen.injectFonts("<html><body></body></html>"))
	assert.Equal(t, "<style>\n@font-face {}\n</style>\n<p>x</p>", gen.injectFonts("<p>x</p>"))
}

func TestNewEngineFactory(t *testing.T) {
	f, err := NewEngineFactory(EngineFactoryConfig{Engine: EngineChromedp}, nil)
	require.NoError(t, err)
	assert.Equal(t, EngineChromedp, f.Name())

	_, err = NewEngineFactory(EngineFactoryConfig{Engine: "mpdf"}, nil)
	assert.Error(t, err)

	_, err = NewEngineFactory(EngineFactoryConfig{Engine: EngineWkhtmltopdf, WkhtmltopdfPath: "/nonexistent/wk"}, nil)
	assert.Error(t, err)
}
