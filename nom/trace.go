package nom

import (
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("greennom.nom")

// Trace wraps p with debug logging of every attempt: the cursor on entry
// and whether p matched or backtracked. It costs a level check when debug
// logging is off.
func Trace[K Kind[K], E any](name string, p Parser[K, E]) Parser[K, E] {
	return func(in Input[K]) (Input[K], Children[K, E], bool) {
		if !log.AllowLevel(commonlog.Debug) {
			return p(in)
		}
		log.Debugf("%s: enter at token %d (offset %d)", name, in.Pos(), in.Offset())
		rest, out, ok := p(in)
		if !ok {
			log.Debugf("%s: backtrack at offset %d", name, in.Offset())
			return rest, out, ok
		}
		log.Debugf("%s: matched %q (%d diagnostics)", name, in.SpanText(rest), len(out.errors))
		return rest, out, ok
	}
}
