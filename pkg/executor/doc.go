// Package executor walks a section tree and acquires every item.
//
// Items run depth-first in declaration order: a section's own items, then
// each child section. With more than one worker, items writing to the same
// destination path stay on one worker in declaration order while
// independent paths run concurrently. A failed item is recorded in the
// report and never stops its siblings unless FailFast is set.
package executor
