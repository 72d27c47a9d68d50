package eramgr

import (
	"context"
	"fmt"
	"sync"

	"github.com/ef-ds/deque"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
	"golang.org/x/sync/semaphore"

	"github.com/casperlabs/casper-go/consensus/highway"
	"github.com/casperlabs/casper-go/engine"
	"github.com/casperlabs/casper-go/model/casper"
	"github.com/casperlabs/casper-go/module"
	"github.com/casperlabs/casper-go/storage"
)

// scheduleKey identifies one outstanding delayed action in the scheduling
// table. Actions compare structurally, so re-scheduling the same action for
// the same era collides, which is a bug in the runtime's agenda.
type scheduleKey struct {
	era    casper.Hash
	action casper.Action
}

// Engine is the era supervisor. It owns the tree of loaded era runtimes,
// drives their round schedules through a table of cancellable timers,
// validates inbound blocks against the era that issued them, and replays the
// domain events the runtimes emit as side effects on the relay and the
// fork-choice manager.
type Engine struct {
	unit    *engine.Unit
	log     zerolog.Logger
	metrics module.HighwayMetrics
	conf    highway.Config
	clock   module.TickClock

	eras       storage.Eras
	blocks     module.BlockProcessor
	relay      module.Relay
	forkchoice module.ForkChoice

	shutdown *atomic.Bool

	// loadSem serializes all first-time era loads; cold loads are rare
	// relative to message traffic, so a single permit is sufficient
	loadSem *semaphore.Weighted

	mu       sync.RWMutex
	loaded   map[casper.Hash]*EraComponents
	schedule map[scheduleKey]context.CancelFunc
}

// New creates the era supervisor and performs the startup bootstrap: the
// genesis era is inserted into storage if absent and the active frontier of
// eras is reconstructed from the stored tips.
func New(
	log zerolog.Logger,
	metrics module.HighwayMetrics,
	conf highway.Config,
	clock module.TickClock,
	eras storage.Eras,
	blocks module.BlockProcessor,
	relay module.Relay,
	forkchoice module.ForkChoice,
) (*Engine, error) {

	err := conf.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	e := &Engine{
		unit:       engine.NewUnit(),
		log:        log.With().Str("engine", "eramgr").Logger(),
		metrics:    metrics,
		conf:       conf,
		clock:      clock,
		eras:       eras,
		blocks:     blocks,
		relay:      relay,
		forkchoice: forkchoice,
		shutdown:   atomic.NewBool(false),
		loadSem:    semaphore.NewWeighted(1),
		loaded:     make(map[casper.Hash]*EraComponents),
		schedule:   make(map[scheduleKey]context.CancelFunc),
	}

	err = e.bootstrap()
	if err != nil {
		return nil, fmt.Errorf("could not bootstrap era supervisor: %w", err)
	}

	return e, nil
}

// Ready returns a ready channel that is closed once the engine has fully
// started. The era supervisor is ready immediately: the startup bootstrap
// has already run in the constructor.
func (e *Engine) Ready() <-chan struct{} {
	return e.unit.Ready()
}

// Done returns a done channel that is closed once the engine has fully
// stopped. Shutdown cancels every outstanding scheduled action and waits for
// in-flight work to finish; it is idempotent after the first invocation.
func (e *Engine) Done() <-chan struct{} {
	return e.unit.Done(e.stop)
}

// ValidateAndAddBlock validates the inbound block against the era that
// issued it, hands it to the block pipeline, propagates it as a
// latest-message observation to the era and all its loaded descendants, and
// replays whatever events the era runtime emits in reaction.
func (e *Engine) ValidateAndAddBlock(block *casper.Block) error {
	if e.shutdown.Load() {
		e.metrics.MessageRejected("shutdown")
		return ErrShuttingDown
	}

	message, err := block.AsMessage()
	if err != nil {
		e.metrics.MessageRejected("malformed")
		return NewMalformedBlockErrorf("could not parse block: %w", err)
	}

	comps, err := e.load(message.KeyBlockHash)
	if err != nil {
		return fmt.Errorf("could not load era %x: %w", message.KeyBlockHash, err)
	}

	comps.mu.Lock()
	err = comps.runtime.Validate(message)
	comps.mu.Unlock()
	if err != nil {
		e.metrics.MessageRejected("invalid")
		return NewInvalidBlockError(err)
	}

	// hand the block over for persistence and execution before any of its
	// effects become observable to fork choice
	err = e.blocks.Process(block)
	if err != nil {
		return fmt.Errorf("could not process block %x: %w", block.Hash, err)
	}

	err = e.propagateLatestMessage(message)
	if err != nil {
		return fmt.Errorf("could not propagate message %x: %w", message.Hash, err)
	}

	comps.mu.Lock()
	events := comps.runtime.HandleMessage(message)
	comps.mu.Unlock()

	e.metrics.MessageHandled(message.Kind.String())

	err = e.handleEvents(events)
	if err != nil {
		return fmt.Errorf("could not handle events for block %x: %w", block.Hash, err)
	}

	return nil
}

// Eras returns a point-in-time snapshot of the loaded era entries, in no
// particular order.
func (e *Engine) Eras() []*EraComponents {
	e.mu.RLock()
	defer e.mu.RUnlock()
	eras := make([]*EraComponents, 0, len(e.loaded))
	for _, comps := range e.loaded {
		eras = append(eras, comps)
	}
	return eras
}

// bootstrap inserts the genesis era if absent and starts every era of the
// active frontier reconstructed from storage.
func (e *Engine) bootstrap() error {
	genesis := e.conf.GenesisEra()
	err := e.eras.AddEra(genesis)
	if err != nil {
		return fmt.Errorf("could not store genesis era: %w", err)
	}

	active, err := e.collectActiveEras()
	if err != nil {
		return fmt.Errorf("could not collect active eras: %w", err)
	}

	for _, hash := range active {
		_, err = e.load(hash)
		if err != nil {
			return fmt.Errorf("could not start era %x: %w", hash, err)
		}
	}

	e.log.Info().Int("active_eras", len(active)).Msg("era supervisor bootstrapped")

	return nil
}

// collectActiveEras walks upward from every stored tip towards genesis and
// collects each era along the way whose agenda is non-empty. The walk is
// upward because a finished tip may have an ancestor that still runs
// overlapping rounds past the tip's birth and must keep ticking.
func (e *Engine) collectActiveEras() ([]casper.Hash, error) {
	tips, err := e.eras.Childless()
	if err != nil {
		return nil, fmt.Errorf("could not get childless eras: %w", err)
	}

	visited := make(map[casper.Hash]struct{})
	var active []casper.Hash
	for _, tip := range tips {
		era := tip
		for {
			if _, ok := visited[era.KeyBlockHash]; ok {
				break
			}
			visited[era.KeyBlockHash] = struct{}{}
			agenda := highway.NewRuntime(era, e.conf, e.clock).InitAgenda()
			if len(agenda) > 0 {
				active = append(active, era.KeyBlockHash)
			}
			if era.IsGenesis() {
				break
			}
			era, err = e.eras.ByKeyBlockHash(era.ParentKeyBlockHash)
			if err != nil {
				return nil, fmt.Errorf("could not get parent era: %w", err)
			}
		}
	}

	return active, nil
}

// load returns the entry for the given era, instantiating it on first
// reference. Instantiation is deduplicated through the load semaphore with a
// double-checked read, so that any era is started at most once over the
// supervisor's lifetime.
func (e *Engine) load(hash casper.Hash) (*EraComponents, error) {
	e.mu.RLock()
	comps, ok := e.loaded[hash]
	e.mu.RUnlock()
	if ok {
		return comps, nil
	}

	err := e.loadSem.Acquire(e.unit.Ctx(), 1)
	if err != nil {
		return nil, fmt.Errorf("could not acquire load semaphore: %w", err)
	}
	defer e.loadSem.Release(1)

	e.mu.RLock()
	comps, ok = e.loaded[hash]
	e.mu.RUnlock()
	if ok {
		return comps, nil
	}

	return e.start(hash)
}

// start instantiates the runtime for the given era and schedules its initial
// agenda. The caller must hold the load semaphore.
func (e *Engine) start(hash casper.Hash) (*EraComponents, error) {
	era, err := e.eras.ByKeyBlockHash(hash)
	if err != nil {
		return nil, fmt.Errorf("could not get era: %w", err)
	}

	runtime := highway.NewRuntime(era, e.conf, e.clock)
	agenda := runtime.InitAgenda()

	children, err := e.eras.Children(hash)
	if err != nil {
		return nil, fmt.Errorf("could not get children of era: %w", err)
	}

	comps := newEraComponents(runtime, children)

	e.mu.Lock()
	if _, ok := e.loaded[hash]; ok {
		e.mu.Unlock()
		panic(fmt.Sprintf("era started twice (key_block_hash=%x)", hash))
	}
	e.loaded[hash] = comps
	e.mu.Unlock()

	e.metrics.EraStarted()
	e.log.Info().
		Hex("key_block_hash", hash[:]).
		Uint64("start_tick", uint64(era.StartTick)).
		Uint64("end_tick", uint64(era.EndTick)).
		Int("agenda", len(agenda)).
		Msg("era started")

	e.scheduleAgenda(comps, agenda)

	return comps, nil
}

// scheduleAgenda installs every delayed action of the agenda into the
// scheduling table.
func (e *Engine) scheduleAgenda(comps *EraComponents, agenda casper.Agenda) {
	for _, delayed := range agenda {
		e.scheduleAction(comps, delayed)
	}
}

// scheduleAction spawns a cancellable timer fiber for the delayed action.
// When the timer fires, the fiber first removes its own entry from the
// scheduling table, then runs the action and schedules the follow-up agenda.
// Installing a duplicate key is a bug in the runtime's agenda.
func (e *Engine) scheduleAction(comps *EraComponents, delayed casper.DelayedAction) {
	key := scheduleKey{era: comps.Era().KeyBlockHash, action: delayed.Action}
	ctx, cancel := context.WithCancel(e.unit.Ctx())

	// the shutdown flag is checked under the same lock that the shutdown
	// sweep holds, so an entry is either swept or never installed
	e.mu.Lock()
	if e.shutdown.Load() {
		e.mu.Unlock()
		cancel()
		return
	}
	if _, ok := e.schedule[key]; ok {
		e.mu.Unlock()
		cancel()
		panic(fmt.Sprintf("duplicate scheduled action (era=%x, action=%s)", key.era, key.action))
	}
	e.schedule[key] = cancel
	size := uint(len(e.schedule))
	e.mu.Unlock()

	e.metrics.ActionScheduled()
	e.metrics.ScheduleSize(size)

	delay := e.clock.DurationUntil(delayed.Tick)
	e.unit.Launch(func() {
		select {
		case <-ctx.Done():
			return
		case <-e.clock.After(delay):
		}

		e.removeScheduled(key)

		// a fiber that fires while shutdown is in progress must not mutate
		// any state that outlives the process
		if e.shutdown.Load() {
			return
		}

		e.metrics.ActionFired()
		e.fireAction(comps, delayed.Action)
	})
}

// fireAction runs the scheduled action on the era runtime. Failures are
// non-fatal: they are logged and dropped, and recovery relies on the next
// scheduled round.
func (e *Engine) fireAction(comps *EraComponents, action casper.Action) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().
				Hex("key_block_hash", comps.Era().KeyBlockHash[:]).
				Str("action", action.String()).
				Interface("panic", r).
				Msg("scheduled action failed")
		}
	}()

	comps.mu.Lock()
	events, next := comps.runtime.HandleAgenda(action)
	comps.mu.Unlock()

	err := e.handleEvents(events)
	if err != nil {
		e.log.Error().Err(err).
			Hex("key_block_hash", comps.Era().KeyBlockHash[:]).
			Str("action", action.String()).
			Msg("could not handle events of scheduled action")
	}

	e.scheduleAgenda(comps, next)
}

func (e *Engine) removeScheduled(key scheduleKey) {
	e.mu.Lock()
	delete(e.schedule, key)
	size := uint(len(e.schedule))
	e.mu.Unlock()
	e.metrics.ScheduleSize(size)
}

// handleEvents replays the domain events emitted by a runtime as side
// effects, in emission order.
func (e *Engine) handleEvents(events []casper.HighwayEvent) error {
	for _, event := range events {
		switch ev := event.(type) {
		case *casper.CreatedEra:
			e.metrics.EventEmitted("created_era")
			err := e.handleCreatedEra(ev.Era)
			if err != nil {
				return fmt.Errorf("could not handle created era %x: %w", ev.Era.KeyBlockHash, err)
			}
		case *casper.CreatedLambdaMessage:
			e.metrics.EventEmitted("created_lambda_message")
			err := e.handleCreatedMessage(ev.Message)
			if err != nil {
				return fmt.Errorf("could not handle created lambda message: %w", err)
			}
		case *casper.CreatedLambdaResponse:
			e.metrics.EventEmitted("created_lambda_response")
			err := e.handleCreatedMessage(ev.Message)
			if err != nil {
				return fmt.Errorf("could not handle created lambda response: %w", err)
			}
		case *casper.CreatedOmegaMessage:
			e.metrics.EventEmitted("created_omega_message")
			err := e.handleCreatedMessage(ev.Message)
			if err != nil {
				return fmt.Errorf("could not handle created omega message: %w", err)
			}
		default:
			panic(fmt.Sprintf("unknown highway event (%T)", event))
		}
	}
	return nil
}

// handleCreatedEra persists the new era, loads its runtime, and links it
// into its parent's children set. The era is persisted first so the load
// cannot miss it in storage.
func (e *Engine) handleCreatedEra(era *casper.Era) error {
	e.log.Info().
		Hex("key_block_hash", era.KeyBlockHash[:]).
		Hex("parent_key_block_hash", era.ParentKeyBlockHash[:]).
		Msg("created era")

	err := e.eras.AddEra(era)
	if err != nil {
		return fmt.Errorf("could not store era: %w", err)
	}

	_, err = e.load(era.KeyBlockHash)
	if err != nil {
		return fmt.Errorf("could not load era: %w", err)
	}

	e.mu.RLock()
	parent, ok := e.loaded[era.ParentKeyBlockHash]
	e.mu.RUnlock()
	if ok {
		parent.addChild(era.KeyBlockHash)
	}

	return nil
}

// handleCreatedMessage relays the locally produced message and propagates it
// as a latest-message observation. Relay errors are non-fatal.
func (e *Engine) handleCreatedMessage(message *casper.Message) error {
	e.log.Info().
		Hex("hash", message.Hash[:]).
		Hex("key_block_hash", message.KeyBlockHash[:]).
		Uint64("round", uint64(message.Round)).
		Str("kind", message.Kind.String()).
		Msg("created message")

	err := e.relay.Relay([]casper.Hash{message.Hash})
	if err != nil {
		e.log.Warn().Err(err).Hex("hash", message.Hash[:]).Msg("could not relay message")
	}

	return e.propagateLatestMessage(message)
}

// propagateLatestMessage notifies the fork-choice manager of the message in
// the context of its own era and of every descendant era reachable through
// the children links. Cold descendants are loaded during the traversal, so
// branches that happen to not be in memory are not silently skipped.
func (e *Engine) propagateLatestMessage(message *casper.Message) error {
	var result *multierror.Error

	err := e.forkchoice.UpdateLatestMessage(message.KeyBlockHash, message)
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("could not update era %x: %w", message.KeyBlockHash, err))
	}

	visited := map[casper.Hash]struct{}{message.KeyBlockHash: {}}
	var queue deque.Deque
	for _, child := range e.childrenOf(message.KeyBlockHash) {
		queue.PushBack(child)
	}

	for queue.Len() > 0 {
		v, _ := queue.PopFront()
		hash := v.(casper.Hash)
		if _, ok := visited[hash]; ok {
			continue
		}
		visited[hash] = struct{}{}

		comps, err := e.load(hash)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("could not load descendant era %x: %w", hash, err))
			continue
		}

		err = e.forkchoice.UpdateLatestMessage(hash, message)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("could not update descendant era %x: %w", hash, err))
		}

		for _, child := range comps.Children() {
			if _, ok := visited[child]; !ok {
				queue.PushBack(child)
			}
		}
	}

	return result.ErrorOrNil()
}

func (e *Engine) childrenOf(hash casper.Hash) []casper.Hash {
	e.mu.RLock()
	comps, ok := e.loaded[hash]
	e.mu.RUnlock()
	if !ok {
		return nil
	}
	return comps.Children()
}

// stop sets the shutdown flag and cancels every outstanding scheduled fiber.
// Fibers that are mid-execution complete best-effort; the unit waits for
// them after stop returns.
func (e *Engine) stop() {
	if !e.shutdown.CompareAndSwap(false, true) {
		return
	}

	e.mu.Lock()
	for key, cancel := range e.schedule {
		cancel()
		delete(e.schedule, key)
		e.metrics.ActionCancelled()
	}
	e.mu.Unlock()

	e.metrics.ScheduleSize(0)
	e.log.Info().Msg("era supervisor shutting down")
}
