// Package ars implements Augmented Random Search with linear policies.
//
// Augmented Random Search is a gradient-free policy search method. On
// each iteration, a number of random deltas are sampled and each one is
// applied to the policy weights in both the positive and negative
// directions. Each perturbed policy is evaluated for one episode in
// the environment, and the weights are moved along the deltas whose
// pair of rollouts achieved the highest reward, weighted by the
// difference in reward between the two directions.
//
// Observations are normalized using running estimates of their mean
// and variance. These estimates are updated on every step of every
// rollout, including evaluation rollouts.
//
// See https://arxiv.org/abs/1803.07055 for details.
package ars

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"sort"

	"github.com/samuelfneumann/goars/agent"
	"github.com/samuelfneumann/goars/agent/linear/continuous/policy"
	"github.com/samuelfneumann/goars/environment"
	"github.com/samuelfneumann/goars/utils/floatutils"
	"github.com/samuelfneumann/goars/utils/matutils/initializers/weights"
	"gonum.org/v1/gonum/stat"
)

const (
	// Rewards of each step are clipped to [MinReward, MaxReward]
	MinReward float64 = -1.0
	MaxReward float64 = 1.0
)

// Trainer runs Augmented Random Search in a single environment. A
// Trainer runs Config.NumSteps iterations, after which it is Done.
//
// Trainer implements the agent.Agent interface.
type Trainer struct {
	env    environment.Environment
	config Config

	// episodeLength is the configured episode length capped by the
	// environment's own episode cutoff
	episodeLength int

	normalizer *Normalizer
	policy     *policy.Linear

	rewards   []float64
	iteration int
	skipped   int

	// failed is the error of an iteration which did not complete. The
	// policy and normalizer may have changed before the failure, so
	// such a Trainer cannot continue.
	failed error

	logger *log.Logger
}

// New returns a new Trainer for the environment env, configured by c.
// The policy weights are initialized to zero.
func New(env environment.Environment, c Config) (*Trainer, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	features := env.ObservationSpec().Size()
	actionDims := env.ActionSpec().Size()

	episodeLength := c.EpisodeLength
	if cutoffer, ok := env.(environment.EpisodeCutoffer); ok {
		if cutoff := cutoffer.EpisodeCutoff(); cutoff > 0 &&
			cutoff < episodeLength {
			episodeLength = cutoff
		}
	}

	p := policy.NewLinear(actionDims, features, c.Noise, c.Alpha,
		c.NumBestDeltas, weights.NewZero(), c.Seed)

	return &Trainer{
		env:           env,
		config:        c,
		episodeLength: episodeLength,
		normalizer:    NewNormalizer(features),
		policy:        p,
		logger:        log.New(io.Discard, "", 0),
	}, nil
}

// SetLogger sets the logger which the Trainer reports skipped updates
// and recordings to. By default, nothing is logged.
func (t *Trainer) SetLogger(l *log.Logger) {
	t.logger = l
}

// Config returns the configuration of the Trainer
func (t *Trainer) Config() Config {
	return t.config
}

// EpisodeLength returns the maximum number of steps in each rollout
func (t *Trainer) EpisodeLength() int {
	return t.episodeLength
}

// Explore runs a single rollout in the environment using the policy
// weights perturbed by p and returns the sum of the clipped rewards
// seen in the rollout. The rollout lasts until the environment ends the
// episode or until the episode length is reached, whichever comes
// first.
//
// Every observation seen in the rollout updates the normalizer before
// being normalized and given to the policy.
func (t *Trainer) Explore(p policy.Perturbation) (float64, error) {
	step, err := t.env.Reset()
	if err != nil {
		return 0, &EnvironmentError{t.iteration, "reset", err}
	}

	var sumRewards float64
	for plays := 0; plays < t.episodeLength; plays++ {
		t.normalizer.Observe(step.Observation)
		state := t.normalizer.Normalize(step.Observation)
		action := t.policy.Evaluate(state, p)

		var last bool
		step, last, err = t.env.Step(action)
		if err != nil {
			return sumRewards, &EnvironmentError{t.iteration, "step", err}
		}

		sumRewards += floatutils.Clip(step.Reward, MinReward, MaxReward)
		if last {
			break
		}
	}

	return sumRewards, nil
}

// Iterate runs a single iteration of Augmented Random Search and returns
// the reward of an evaluation rollout of the updated policy.
//
// If the rewards of all rollouts in the iteration are equal, the update
// is skipped and the iteration continues with the evaluation rollout.
// Any error from the environment aborts the iteration, after which the
// Trainer returns ErrFailed from Iterate until it is restored from a
// checkpoint with GobDecode.
func (t *Trainer) Iterate() (float64, error) {
	if t.failed != nil {
		return 0, fmt.Errorf("iterate: %w: %v", ErrFailed, t.failed)
	}
	if t.Done() {
		return 0, fmt.Errorf("iterate: %w", ErrFinished)
	}

	reward, err := t.iterate()
	if err != nil {
		t.failed = err
		return 0, fmt.Errorf("iterate: %w", err)
	}
	return reward, nil
}

// iterate runs a single iteration, see Iterate
func (t *Trainer) iterate() (float64, error) {
	deltas := t.policy.SampleDeltas(t.config.NumDeltas)
	rollouts := make([]policy.Rollout, len(deltas))
	rewards := make([]float64, 0, 2*len(deltas))

	for i, delta := range deltas {
		positive, err := t.Explore(policy.Plus(delta))
		if err != nil {
			return 0, err
		}

		negative, err := t.Explore(policy.Minus(delta))
		if err != nil {
			return 0, err
		}

		rollouts[i] = policy.Rollout{
			PositiveReward: positive,
			NegativeReward: negative,
			Delta:          delta,
		}
		rewards = append(rewards, positive, negative)
	}

	sigmaRewards := math.Sqrt(stat.PopVariance(rewards, nil))

	// Keep the deltas with the best rollouts, ties keep their sampling
	// order
	sort.SliceStable(rollouts, func(i, j int) bool {
		return rollouts[i].Best() > rollouts[j].Best()
	})
	best := rollouts[:t.config.NumBestDeltas]

	if err := t.policy.Update(best, sigmaRewards); err != nil {
		if !errors.Is(err, policy.ErrDegenerateReward) {
			return 0, err
		}
		t.skipped++
		t.logger.Printf("iteration %v: skipping update: %v", t.iteration,
			err)
	}

	reward, err := t.evaluate()
	if err != nil {
		return 0, err
	}

	t.rewards = append(t.rewards, reward)
	t.iteration++

	return reward, nil
}

// evaluate runs a rollout with the unperturbed policy, recording it if
// the iteration is due for a recording
func (t *Trainer) evaluate() (float64, error) {
	recorder, ok := t.env.(environment.Recorder)
	record := ok && t.config.RecordEvery > 0 &&
		t.iteration%t.config.RecordEvery == 0

	if record {
		t.logger.Printf("iteration %v: recording evaluation rollout",
			t.iteration)
		recorder.SetRecording(true)
		defer recorder.SetRecording(false)
	}

	return t.Explore(policy.NoPerturbation())
}

// Train runs all remaining iterations and returns the evaluation reward
// of each iteration run by the Trainer. Training stops early if the
// context is cancelled or if an iteration fails, in which case the
// rewards of all completed iterations are returned with the error.
func (t *Trainer) Train(ctx context.Context) ([]float64, error) {
	for !t.Done() {
		if err := ctx.Err(); err != nil {
			return t.Rewards(), fmt.Errorf("train: stopped at iteration "+
				"%v: %w", t.iteration, err)
		}

		if _, err := t.Iterate(); err != nil {
			return t.Rewards(), fmt.Errorf("train: %w", err)
		}
	}

	return t.Rewards(), nil
}

// Done returns whether all iterations have been run
func (t *Trainer) Done() bool {
	return t.iteration >= t.config.NumSteps
}

// Iteration returns the number of iterations completed
func (t *Trainer) Iteration() int {
	return t.iteration
}

// Rewards returns the evaluation reward of each completed iteration
func (t *Trainer) Rewards() []float64 {
	return copySlice(t.rewards)
}

// Skipped returns the number of iterations in which the update was
// skipped because all rollouts had the same reward
func (t *Trainer) Skipped() int {
	return t.skipped
}

// Policy returns the policy being trained
func (t *Trainer) Policy() agent.Policy {
	return t.policy
}

// Linear returns the policy being trained
func (t *Trainer) Linear() *policy.Linear {
	return t.policy
}

// Normalizer returns the observation normalizer
func (t *Trainer) Normalizer() *Normalizer {
	return t.normalizer
}

// trainerState is the serialized form of a Trainer
type trainerState struct {
	Policy     []byte
	Normalizer []byte
	Iteration  int
	Skipped    int
	Rewards    []float64
}

// GobEncode implements the gob.GobEncoder interface. The policy
// weights, normalizer estimates and training progress are encoded, the
// random stream is not.
func (t *Trainer) GobEncode() ([]byte, error) {
	p, err := t.policy.GobEncode()
	if err != nil {
		return nil, fmt.Errorf("gobEncode: %w", err)
	}
	n, err := t.normalizer.GobEncode()
	if err != nil {
		return nil, fmt.Errorf("gobEncode: %w", err)
	}

	var buf bytes.Buffer
	state := trainerState{
		Policy:     p,
		Normalizer: n,
		Iteration:  t.iteration,
		Skipped:    t.skipped,
		Rewards:    t.rewards,
	}
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, fmt.Errorf("gobEncode: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface. The Trainer must
// have been created with New for an environment of the same shape as
// the one the encoded Trainer was trained in.
func (t *Trainer) GobDecode(in []byte) error {
	if t.policy == nil || t.normalizer == nil {
		return fmt.Errorf("gobDecode: trainer must be created with New")
	}

	var state trainerState
	if err := gob.NewDecoder(bytes.NewReader(in)).Decode(&state); err != nil {
		return fmt.Errorf("gobDecode: %w", err)
	}

	if err := t.policy.GobDecode(state.Policy); err != nil {
		return fmt.Errorf("gobDecode: %w", err)
	}
	if err := t.normalizer.GobDecode(state.Normalizer); err != nil {
		return fmt.Errorf("gobDecode: %w", err)
	}

	t.iteration = state.Iteration
	t.skipped = state.Skipped
	t.rewards = state.Rewards
	t.failed = nil
	return nil
}
