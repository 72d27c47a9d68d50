package casper

// Tick is one unit of the protocol's integer logical clock. The conversion
// between ticks and wall-clock durations is fixed by configuration; the
// consensus core never deals in wall-clock time directly.
type Tick uint64

// Round numbers the scheduled intervals within an era, starting at zero from
// the era's start tick.
type Round uint64
