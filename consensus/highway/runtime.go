package highway

import (
	"github.com/casperlabs/casper-go/model/casper"
	"github.com/casperlabs/casper-go/module"
)

// slotKey identifies the schedule slot a message occupies; a validator may
// produce at most one message per slot.
type slotKey struct {
	validator casper.ValidatorID
	round     casper.Round
	kind      casper.MessageKind
}

// Runtime is the per-era state machine. It validates messages against the
// era's rules, reacts to agenda ticks, and produces new messages and
// era-creation events. All side effects are surfaced as domain events, which
// the era supervisor replays; the runtime itself only mutates its internal
// ledger of known messages.
//
// Runtime is not safe for concurrent use. The supervisor serializes all
// calls on the same runtime.
type Runtime struct {
	era   *casper.Era
	conf  Config
	clock module.TickClock

	known   map[casper.Hash]struct{}
	slots   map[slotKey]casper.Hash
	lambdas map[casper.Round]*casper.Message
}

// NewRuntime binds a runtime to the given era.
func NewRuntime(era *casper.Era, conf Config, clock module.TickClock) *Runtime {
	return &Runtime{
		era:     era,
		conf:    conf,
		clock:   clock,
		known:   make(map[casper.Hash]struct{}),
		slots:   make(map[slotKey]casper.Hash),
		lambdas: make(map[casper.Round]*casper.Message),
	}
}

// Era returns the era this runtime is bound to.
func (r *Runtime) Era() *casper.Era {
	return r.era
}

// InitAgenda produces the initial set of delayed actions given the current
// tick and the era's round schedule. It is empty iff the era is already
// finished, which is what makes an era inactive at startup.
func (r *Runtime) InitAgenda() casper.Agenda {
	now := r.clock.Now()
	if now >= r.era.EndTick {
		return nil
	}
	var round casper.Round
	if now > r.era.StartTick {
		round = r.roundAt(now)
	}
	return casper.Agenda{{
		Tick:   r.roundStart(round),
		Action: casper.Action{Kind: casper.ActionStartRound, Round: round},
	}}
}

// Validate checks the message against the era's rules. It does not mutate
// the runtime; rejected messages must not be handed to HandleMessage.
func (r *Runtime) Validate(message *casper.Message) error {
	if message.KeyBlockHash != r.era.KeyBlockHash {
		return NewInvalidMessageErrorf("message %x belongs to era %x, not %x",
			message.Hash, message.KeyBlockHash, r.era.KeyBlockHash)
	}
	if !r.era.BondedValidators.Exists(message.Validator) {
		return NewInvalidMessageErrorf("validator %x is not bonded in era %x",
			message.Validator, r.era.KeyBlockHash)
	}
	if message.Round > r.lastRound() {
		return NewInvalidMessageErrorf("round %d is outside era bounds (last round %d)",
			message.Round, r.lastRound())
	}
	if message.ParentHash == message.Hash {
		return NewInvalidMessageErrorf("message %x is its own parent", message.Hash)
	}
	slot := slotKey{message.Validator, message.Round, message.Kind}
	if prev, ok := r.slots[slot]; ok && prev != message.Hash {
		return NewInvalidMessageErrorf("validator %x equivocates in round %d (%s): already have %x",
			message.Validator, message.Round, message.Kind, prev)
	}
	return nil
}

// HandleMessage reacts to an externally received, validated message. It is
// idempotent under re-delivery: a message already known produces no events.
func (r *Runtime) HandleMessage(message *casper.Message) []casper.HighwayEvent {
	return r.record(message)
}

// HandleAgenda fires the given scheduled action. It returns the emitted
// events plus the follow-up delayed actions to schedule.
func (r *Runtime) HandleAgenda(action casper.Action) ([]casper.HighwayEvent, casper.Agenda) {
	switch action.Kind {
	case casper.ActionStartRound:
		return r.startRound(action.Round)
	case casper.ActionCreateLambdaResponse:
		return r.createLambdaResponse(action.Round), nil
	case casper.ActionCreateOmegaMessage:
		return r.createOmegaMessage(action.Round), nil
	default:
		return nil, nil
	}
}

// startRound produces the round's lambda message when we lead it and
// schedules the round's remaining actions plus the next round.
func (r *Runtime) startRound(round casper.Round) ([]casper.HighwayEvent, casper.Agenda) {
	start := r.roundStart(round)
	if start >= r.era.EndTick {
		return nil, nil
	}
	length := r.conf.RoundLength()

	var events []casper.HighwayEvent
	leading := r.canPropose() && Leader(r.era, round) == *r.conf.BondedValidator
	if leading {
		lambda := r.newMessage(casper.MessageLambda, round, r.era.KeyBlockHash)
		events = append(events, &casper.CreatedLambdaMessage{Message: lambda})
		events = append(events, r.record(lambda)...)
	}

	var next casper.Agenda
	if r.bonded() {
		if !leading {
			next = append(next, casper.DelayedAction{
				Tick:   start + length/2,
				Action: casper.Action{Kind: casper.ActionCreateLambdaResponse, Round: round},
			})
		}
		next = append(next, casper.DelayedAction{
			Tick:   start + length*3/4,
			Action: casper.Action{Kind: casper.ActionCreateOmegaMessage, Round: round},
		})
	}
	if start+length < r.era.EndTick {
		next = append(next, casper.DelayedAction{
			Tick:   start + length,
			Action: casper.Action{Kind: casper.ActionStartRound, Round: round + 1},
		})
	}
	return events, next
}

// createLambdaResponse answers the round's lambda message, if we have
// received one by the time the action fires. A round whose lambda never
// arrived produces nothing.
func (r *Runtime) createLambdaResponse(round casper.Round) []casper.HighwayEvent {
	if !r.canPropose() {
		return nil
	}
	lambda, ok := r.lambdas[round]
	if !ok || lambda.Validator == *r.conf.BondedValidator {
		return nil
	}
	response := r.newMessage(casper.MessageLambdaResponse, round, lambda.Hash)
	events := []casper.HighwayEvent{&casper.CreatedLambdaResponse{Message: response}}
	return append(events, r.record(response)...)
}

func (r *Runtime) createOmegaMessage(round casper.Round) []casper.HighwayEvent {
	if !r.canPropose() {
		return nil
	}
	omega := r.newMessage(casper.MessageOmega, round, r.era.KeyBlockHash)
	events := []casper.HighwayEvent{&casper.CreatedOmegaMessage{Message: omega}}
	return append(events, r.record(omega)...)
}

// record adds the message to the runtime's ledger and emits the era-creation
// event when the message is a switch block candidate. Re-recording a known
// message is a no-op.
func (r *Runtime) record(message *casper.Message) []casper.HighwayEvent {
	if _, ok := r.known[message.Hash]; ok {
		return nil
	}
	r.known[message.Hash] = struct{}{}
	r.slots[slotKey{message.Validator, message.Round, message.Kind}] = message.Hash
	if message.Kind == casper.MessageLambda {
		if _, ok := r.lambdas[message.Round]; !ok {
			r.lambdas[message.Round] = message
		}
	}

	// a lambda or block message in the era's final round seals the era and
	// becomes the key block of a child era
	var events []casper.HighwayEvent
	if (message.Kind == casper.MessageLambda || message.Kind == casper.MessageBlock) &&
		message.Round == r.lastRound() {
		child := &casper.Era{
			KeyBlockHash:       message.Hash,
			ParentKeyBlockHash: r.era.KeyBlockHash,
			StartTick:          r.era.EndTick,
			EndTick:            r.era.EndTick + r.conf.EraDuration,
			BondedValidators:   r.era.BondedValidators,
			LeaderSeed:         ChildLeaderSeed(r.era, message.Hash),
		}
		events = append(events, &casper.CreatedEra{Era: child})
	}
	return events
}

func (r *Runtime) newMessage(kind casper.MessageKind, round casper.Round, parent casper.Hash) *casper.Message {
	message := &casper.Message{
		ParentHash:   parent,
		KeyBlockHash: r.era.KeyBlockHash,
		Round:        round,
		Validator:    *r.conf.BondedValidator,
		Kind:         kind,
	}
	message.Hash = casper.MakeHash(struct {
		ParentHash   casper.Hash
		KeyBlockHash casper.Hash
		Round        casper.Round
		Validator    casper.ValidatorID
		Kind         casper.MessageKind
	}{message.ParentHash, message.KeyBlockHash, message.Round, message.Validator, message.Kind})
	return message
}

// bonded returns whether the local validator participates in this era.
func (r *Runtime) bonded() bool {
	return r.conf.BondedValidator != nil && r.era.BondedValidators.Exists(*r.conf.BondedValidator)
}

// canPropose returns whether the local validator may produce messages right
// now. Production is suspended while the node is catching up.
func (r *Runtime) canPropose() bool {
	if !r.bonded() {
		return false
	}
	if r.conf.IsSynced != nil && !r.conf.IsSynced() {
		return false
	}
	return true
}

func (r *Runtime) roundAt(tick casper.Tick) casper.Round {
	return casper.Round((tick - r.era.StartTick) / r.conf.RoundLength())
}

func (r *Runtime) roundStart(round casper.Round) casper.Tick {
	return r.era.StartTick + casper.Tick(round)*r.conf.RoundLength()
}

// lastRound returns the era's final round, whose lambda or block messages
// are switch block candidates.
func (r *Runtime) lastRound() casper.Round {
	return casper.Round((r.era.EndTick - r.era.StartTick - 1) / r.conf.RoundLength())
}
