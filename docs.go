// docs.go: topic texts served by system.help.
package sharpscript

var helpTopics = map[string]string{
	"help": `SharpScript quick reference

Declarations:
  &insert x = 10;            mutable binding
  &insert x: number = 10;    with a declared-type tag (checked on store)
  const PI = 3.14159;        immutable binding

Functions:
  function add(a, b = 1) { return a + b; }
  &insert twice = function (x) { return x * 2; };

Control flow:
  if (cond) { ... } else { ... }
  while (cond) { ... }
  for (i = 0; i < 10; i++) { ... }
  for (item in [1, 2, 3]) { ... }
  match (x) { case 1: { ... } default: { ... } }
  try { ... } catch (e) { ... } finally { ... }

Grouping:
  namespace math { function square(x) { return x * x; } }   # math.square(4)
  enum Color { RED, GREEN, BLUE = 10, ALPHA }               # Color.BLUE == 10

Builtins:
  system.print, system.output, system.error, system.warning, system.input
  system.sin/cos/tan/asin/acos/atan, system.log, system.ln, system.exp,
  system.sqrt, system.pow
  system.store/recall/memclear, system.convert, system.history.add/get/clear
  system.len, system.type, system.annotate, system.throw
  file.read, file.write

Comments start with '#'. Use '#include "path"' to splice another script.
Try system.help("builtins") or system.help("convert") for more.`,

	"builtins": `Builtin registry

Console:     system.print(x, ...)    print display forms, space separated
             system.output(x, ...)   alias of system.print
             system.error(x, ...)    write to stderr with "Error:" prefix
             system.warning(x, ...)  write with "Warning:" prefix
             system.input(prompt?)   read one line from stdin
Math:        system.sin/cos/tan/asin/acos/atan/ln/exp/sqrt(x)
             system.log(x)           base-10 logarithm
             system.pow(a, b)
Memory:      system.store(name, v)   keep v under name until memclear
             system.recall(name)     fetch a stored value (null if absent)
             system.memclear()
History:     system.history.add(v), system.history.get(), system.history.clear()
Conversion:  system.convert(v, from, to)    see system.help("convert")
Inspection:  system.len(x), system.type(x), system.annotate(v, note)
Errors:      system.throw(name, message, code)
Files:       file.read(path), file.write(path, text)`,

	"convert": `system.convert(value, from, to)

Fixed conversion table:
  length       m <-> km, m <-> mi
  mass         kg <-> lb
  temperature  C <-> F, C <-> K

Unknown unit pairs yield null.`,
}

// HelpTopic returns the help text for a topic, falling back to the general
// reference for unknown topics.
func HelpTopic(topic string) string {
	if text, ok := helpTopics[topic]; ok {
		return text
	}
	return helpTopics["help"]
}
