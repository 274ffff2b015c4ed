package envconfig

import (
	"encoding/json"
	"errors"
	"testing"

	env "github.com/samuelfneumann/goars/environment"
	"github.com/samuelfneumann/goars/environment/classiccontrol/cartpole"
	"github.com/samuelfneumann/goars/environment/classiccontrol/mountaincar"
	"github.com/samuelfneumann/goars/environment/classiccontrol/pendulum"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		config   Config
		features int
		actions  int
	}{
		{NewConfig(Pendulum, SwingUp, 200), pendulum.ObservationDims,
			pendulum.ActionDims},
		{NewConfig(Cartpole, Balance, 500), cartpole.ObservationDims,
			cartpole.ActionDims},
		{NewConfig(MountainCar, Goal, 300), mountaincar.ObservationDims,
			mountaincar.ActionDims},
	}

	for _, test := range tests {
		e, err := test.config.Create(1)
		if err != nil {
			t.Fatalf("%v: %v", test.config.Environment, err)
		}

		if e.ObservationSpec().Size() != test.features {
			t.Errorf("%v: want %v features have %v", test.config.Environment,
				test.features, e.ObservationSpec().Size())
		}
		if e.ActionSpec().Size() != test.actions {
			t.Errorf("%v: want %v actions have %v", test.config.Environment,
				test.actions, e.ActionSpec().Size())
		}

		cutoffer, ok := e.(env.EpisodeCutoffer)
		if !ok || cutoffer.EpisodeCutoff() != test.config.EpisodeCutoff {
			t.Errorf("%v: want episode cutoff %v", test.config.Environment,
				test.config.EpisodeCutoff)
		}

		if _, err := e.Reset(); err != nil {
			t.Errorf("%v: reset: %v", test.config.Environment, err)
		}
	}
}

func TestCreateErrors(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"unknown environment", NewConfig("Acrobot", SwingUp, 10)},
		{"wrong task", NewConfig(Pendulum, Balance, 10)},
		{"wrong mountain car task", NewConfig(MountainCar, SwingUp, 10)},
		{"zero cutoff", NewConfig(Cartpole, Balance, 0)},
		{"no gym name", NewGymConfig("")},
	}

	for _, test := range tests {
		if _, err := test.config.Create(1); err == nil {
			t.Errorf("%v: expected error", test.name)
		}
	}
}

func TestRegister(t *testing.T) {
	errCreate := errors.New("not available")
	var created string

	old, hadCreator := registered[Gym]
	defer func() {
		if hadCreator {
			registered[Gym] = old
		} else {
			delete(registered, Gym)
		}
	}()

	Register(Gym, func(name string, seed uint64) (env.Environment, error) {
		created = name
		return nil, errCreate
	})

	_, err := NewGymConfig("Pendulum-v0").Create(1)
	if !errors.Is(err, errCreate) {
		t.Errorf("create: want %v have %v", errCreate, err)
	}
	if created != "Pendulum-v0" {
		t.Errorf("create: want environment Pendulum-v0 have %v", created)
	}
}

func TestConfigJSON(t *testing.T) {
	c := NewConfig(Cartpole, Balance, 500)

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Config
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded != c {
		t.Errorf("unmarshal: want %v have %v", c, decoded)
	}
}
