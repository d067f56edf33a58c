package physics

import (
	"fmt"
	"math"

	"github.com/hhakhilesh/DamperMassSpring/internal/dynamo"
)

// Params is one of the two oscillator parameterizations: Physical or Modal.
type Params interface {
	validate() error
	String() string
}

// Physical parameters. All three must be strictly positive.
type Physical struct {
	M float32 // mass
	C float32 // damping coefficient
	K float32 // spring stiffness
}

// Modal parameters. Both must be non-negative.
type Modal struct {
	Zeta float32 // damping ratio
	Wn   float32 // natural frequency
}

func (p Physical) validate() error {
	if err := positive("m", p.M); err != nil {
		return err
	}
	if err := positive("c", p.C); err != nil {
		return err
	}
	return positive("k", p.K)
}

func (p Physical) String() string {
	return fmt.Sprintf("m,c,k= %g,%g,%g", p.M, p.C, p.K)
}

func (p Modal) validate() error {
	if err := nonNegative("zeta", p.Zeta); err != nil {
		return err
	}
	return nonNegative("wn", p.Wn)
}

func (p Modal) String() string {
	return fmt.Sprintf("zeta,wn= %g,%g", p.Zeta, p.Wn)
}

// Oscillator is an immutable mass-spring-damper model.
type Oscillator struct {
	modal    Modal
	physical Physical
	hasPhys  bool
	wn2      float32
}

// New validates p and builds the model, deriving the modal form when p is
// Physical.
func New(p Params) (*Oscillator, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: no parameterization given", dynamo.ErrInvalidParameter)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	o := &Oscillator{}
	switch v := p.(type) {
	case Physical:
		o.physical = v
		o.hasPhys = true
		o.modal = Modal{
			Zeta: v.C / v.M,
			Wn:   float32(math.Sqrt(float64(v.K / v.M))),
		}
	case Modal:
		o.modal = v
	}
	o.wn2 = o.modal.Wn * o.modal.Wn
	return o, nil
}

func NewPhysical(m, c, k float32) (*Oscillator, error) {
	return New(Physical{M: m, C: c, K: k})
}

func NewModal(zeta, wn float32) (*Oscillator, error) {
	return New(Modal{Zeta: zeta, Wn: wn})
}

// Modal returns (zeta, wn). It is always available.
func (o *Oscillator) Modal() Modal { return o.modal }

// Physical returns (m, c, k), or ErrUnavailableParameter when the model was
// built from modal parameters.
func (o *Oscillator) Physical() (Physical, error) {
	if !o.hasPhys {
		return Physical{}, fmt.Errorf("%w: m, c, k not supplied for a modal model", dynamo.ErrUnavailableParameter)
	}
	return o.physical, nil
}

// Params returns the parameterization the model was built from.
func (o *Oscillator) Params() Params {
	if o.hasPhys {
		return o.physical
	}
	return o.modal
}

// Config returns [wn, zeta] when derived is true, otherwise [m, c, k].
func (o *Oscillator) Config(derived bool) ([]float32, error) {
	if derived {
		return []float32{o.modal.Wn, o.modal.Zeta}, nil
	}
	p, err := o.Physical()
	if err != nil {
		return nil, err
	}
	return []float32{p.M, p.C, p.K}, nil
}

// DerivePosition is the kinematic identity dx/dt = x'.
func (o *Oscillator) DerivePosition(x, xDot float32) float32 {
	return xDot
}

func (o *Oscillator) DeriveVelocity(x, xDot float32) float32 {
	return -o.wn2*x - o.modal.Zeta*xDot
}

// Energy per unit mass: kinetic plus spring potential.
func (o *Oscillator) Energy(x, xDot float32) float32 {
	return 0.5*xDot*xDot + 0.5*o.wn2*x*x
}

// DampedFrequency is wn*sqrt(1 - (zeta/2wn)^2) in rad/s for the underdamped
// case x'' + zeta*x' + wn^2*x = 0, and 0 when the motion does not oscillate.
func (o *Oscillator) DampedFrequency() float32 {
	wn := float64(o.modal.Wn)
	if wn == 0 {
		return 0
	}
	r := float64(o.modal.Zeta) / (2 * wn)
	if r >= 1 {
		return 0
	}
	return float32(wn * math.Sqrt(1-r*r))
}

func positive(name string, v float32) error {
	if !(v > 0) || math.IsInf(float64(v), 0) {
		return &dynamo.ParameterError{Name: name, Value: v, Rule: "positive and finite"}
	}
	return nil
}

func nonNegative(name string, v float32) error {
	if !(v >= 0) || math.IsInf(float64(v), 0) {
		return &dynamo.ParameterError{Name: name, Value: v, Rule: "non-negative and finite"}
	}
	return nil
}
