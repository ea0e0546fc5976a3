/*
Package operation implements the core replacement pipeline for slide decks.

	+-------------+
	|   Replace   |
	| (Core Logic)|
	+------+------+
	       |
	+------+------+
	|  Paragraph  |
	| (Rewrite)   |
	+------+------+

🎯 Purpose:
- Resolves a replacement scope (current slide, explicit slide, whole deck)
- Runs flatten → match → rewrite over each paragraph in scope
- Aggregates replacement counts and raises the no-match warning

🔄 Flow:
1. Validate arguments, compile the pattern, resolve the scope (all before
   any paragraph is touched)
2. Per paragraph: flatten runs, find match spans, rewrite runs
3. Sum counts per slide; attach NoMatchWarning when nothing changed

⚡ Key Responsibilities:
- Scope resolution and pre-mutation validation
- Per-paragraph orchestration (paragraphs with zero matches stay untouched)
- Deterministic counting, including the parallel whole-deck pass

🤝 Interfaces:
- deck: document/slide/paragraph/run tree, mutated in place via SetRuns
- match: compiled pattern producing flattened-offset spans
- text: flattener and chunk rewriter

📝 Design Philosophy:
The orchestrator owns policy (ordering, counting, warnings) and delegates
all mechanism: matching to pkg/match, run surgery to pkg/text. Replacement
text is always literal, never expanded for capture-group references.
*/
package operation
