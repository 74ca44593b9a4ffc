// Package demo builds the control panel shown next to the slider on the
// demo page. Every option gets an input; the inputs write through the
// slider's dynamic facade and follow its subscriptions.
package demo

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/vango-dev/rangeslider/pkg/cell"
	"github.com/vango-dev/rangeslider/pkg/model"
	"github.com/vango-dev/rangeslider/pkg/slider"
	"github.com/vango-dev/rangeslider/pkg/vdom"
)

// Class names of the demo page.
const (
	ClassRoot   = "demo"
	ClassSlider = "demo__slider"
	ClassPanel  = "demo__panel"
	ClassField  = "demo__field"
	ClassInput  = "demo__input"
)

var captions = map[model.Option]string{
	model.OptIsRange:             "Is range",
	model.OptHasDefaultValues:    "Default values",
	model.OptIsVertical:          "Is vertical",
	model.OptValueLabelDisplayed: "Display value label",
	model.OptLimitsDisplayed:     "Display limits",
	model.OptMinValue:            "Min value",
	model.OptMaxValue:            "Max value",
	model.OptStep:                "Step",
	model.OptLeftHandleValue:     "Handle value",
	model.OptRightHandleValue:    "Second handle value",
	model.OptPointsNumber:        "Scale points",
	model.OptDefaultValues:       "Default labels",
}

// Option configures New.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	sliders []slider.Option
}

// WithLogger sets the panel's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithSliderOptions passes options through to slider.New.
func WithSliderOptions(opts ...slider.Option) Option {
	return func(o *options) { o.sliders = append(o.sliders, opts...) }
}

type subscription struct {
	opt model.Option
	sub cell.Subscription
}

// Panel is a slider plus its control panel.
type Panel struct {
	root   *vdom.VNode
	panel  *vdom.VNode
	slider *slider.Slider
	fields map[model.Option]*vdom.VNode
	inputs map[model.Option]*vdom.VNode
	subs   []subscription
	logger *slog.Logger
}

// New builds the demo page fragment and appends it to container.
func New(container *vdom.VNode, overrides model.Overrides, opts ...Option) *Panel {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	box := vdom.Div(vdom.Class(ClassSlider), vdom.Key("demo-slider"))
	p := &Panel{
		panel:  vdom.Div(vdom.Class(ClassPanel), vdom.Key("panel")),
		slider: slider.New(box, overrides, o.sliders...),
		fields: make(map[model.Option]*vdom.VNode),
		inputs: make(map[model.Option]*vdom.VNode),
		logger: o.logger.With("component", "demo-panel"),
	}
	p.root = vdom.Div(vdom.Class(ClassRoot), vdom.Key("demo"), box, p.panel)

	for _, opt := range model.Options() {
		p.addField(opt)
	}
	p.layout()

	for _, opt := range model.Options() {
		sub, _ := p.slider.SubscribeAny(opt, func(any) { p.sync(opt) })
		p.subs = append(p.subs, subscription{opt, sub})
	}
	sub, _ := p.slider.SubscribeAny(model.OptIsRange, func(any) { p.layout() })
	p.subs = append(p.subs, subscription{model.OptIsRange, sub})

	vdom.AppendChild(container, p.root)
	return p
}

// Root returns the demo root node.
func (p *Panel) Root() *vdom.VNode { return p.root }

// Slider returns the slider the panel controls.
func (p *Panel) Slider() *slider.Slider { return p.slider }

// Input returns the input bound to opt.
func (p *Panel) Input(opt model.Option) *vdom.VNode { return p.inputs[opt] }

// Close removes the panel's subscriptions from the slider.
func (p *Panel) Close() {
	for _, s := range p.subs {
		p.slider.UnsubscribeAny(s.opt, s.sub)
	}
	p.subs = nil
}

func (p *Panel) addField(opt model.Option) {
	var input *vdom.VNode
	if opt.Kind() == model.KindBool {
		input = vdom.Input(
			vdom.Type("checkbox"),
			vdom.Class(ClassInput),
			vdom.Name(opt.String()),
			vdom.Key("input"),
			vdom.OnChange(func(ev *vdom.Event) { p.write(opt, ev.Checked) }),
		)
	} else {
		inputType := "number"
		if opt.Kind() == model.KindLabels {
			inputType = "text"
		}
		input = vdom.Input(
			vdom.Type(inputType),
			vdom.Class(ClassInput),
			vdom.Name(opt.String()),
			vdom.Key("input"),
			vdom.OnChange(func(ev *vdom.Event) { p.write(opt, ev.Value) }),
		)
	}
	p.inputs[opt] = input
	p.fields[opt] = vdom.Label(
		vdom.Class(ClassField),
		vdom.Key(opt.String()),
		vdom.Span(vdom.Text(captions[opt])),
		input,
	)
	p.sync(opt)
}

// write forwards an input change. Rejected or unparsable input is put back
// to the current value.
func (p *Panel) write(opt model.Option, v any) {
	if err := p.slider.SetValue(opt, v); err != nil {
		p.logger.Debug("input reverted", "option", opt.String(), "input", v, "error", err)
		p.sync(opt)
	}
}

// sync copies the slider's value of opt into its input.
func (p *Panel) sync(opt model.Option) {
	input := p.inputs[opt]
	if input == nil {
		return
	}
	switch v := p.slider.Value(opt).(type) {
	case bool:
		vdom.SetAttr(input, "checked", v)
	case float64:
		vdom.SetAttr(input, "value", model.FormatNumber(v))
	case int:
		vdom.SetAttr(input, "value", strconv.Itoa(v))
	case model.Labels:
		vdom.SetAttr(input, "value", strings.Join(v, ", "))
	}
}

// layout attaches the fields; the second handle only exists in range mode.
func (p *Panel) layout() {
	isRange := slider.Get(p.slider, slider.IsRange)
	children := make([]*vdom.VNode, 0, len(p.fields))
	for _, opt := range model.Options() {
		if opt == model.OptRightHandleValue && !isRange {
			continue
		}
		children = append(children, p.fields[opt])
	}
	p.panel.Children = children
}

// NewPage builds the full demo page body: a heading and the panel.
func NewPage(title string, overrides model.Overrides, opts ...Option) (*vdom.VNode, *Panel) {
	body := vdom.Main(vdom.Key("app"), vdom.H1(vdom.Key("title"), vdom.Text(title)))
	p := New(body, overrides, opts...)
	return body, p
}
