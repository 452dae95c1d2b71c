package vdom

import (
	"fmt"

	"github.com/vango-dev/vtree/internal/errors"
)

// updateChildren reconciles two child lists of the same parent with four
// pointers walking inwards from both ends. Host nodes are only moved when a
// node was found at the opposite end; anything unmatched is looked up by key.
func (p *Patcher) updateChildren(parent *VNode, parentElm Node, oldCh, newCh []*VNode, queue *insertQueue) {
	oldStartIdx, newStartIdx := 0, 0
	oldEndIdx, newEndIdx := len(oldCh)-1, len(newCh)-1
	oldStart, oldEnd := oldCh[0], oldCh[oldEndIdx]
	newStart, newEnd := newCh[0], newCh[newEndIdx]

	var oldKeyToIdx map[any]int

	p.checkDuplicateKeys(parent, newCh)

	for oldStartIdx <= oldEndIdx && newStartIdx <= newEndIdx {
		switch {
		case oldStart == nil:
			// Moved out by a keyed match.
			oldStartIdx++
			oldStart = at(oldCh, oldStartIdx)
		case oldEnd == nil:
			oldEndIdx--
			oldEnd = at(oldCh, oldEndIdx)
		case sameVnode(oldStart, newStart):
			p.patchVnode(oldStart, newStart, queue)
			oldStartIdx++
			newStartIdx++
			oldStart, newStart = at(oldCh, oldStartIdx), at(newCh, newStartIdx)
		case sameVnode(oldEnd, newEnd):
			p.patchVnode(oldEnd, newEnd, queue)
			oldEndIdx--
			newEndIdx--
			oldEnd, newEnd = at(oldCh, oldEndIdx), at(newCh, newEndIdx)
		case sameVnode(oldStart, newEnd):
			// Moved right.
			p.patchVnode(oldStart, newEnd, queue)
			p.insert(parentElm, oldStart.Elm, p.host.NextSibling(oldEnd.Elm))
			oldStartIdx++
			newEndIdx--
			oldStart, newEnd = at(oldCh, oldStartIdx), at(newCh, newEndIdx)
		case sameVnode(oldEnd, newStart):
			// Moved left.
			p.patchVnode(oldEnd, newStart, queue)
			p.insert(parentElm, oldEnd.Elm, oldStart.Elm)
			oldEndIdx--
			newStartIdx++
			oldEnd, newStart = at(oldCh, oldEndIdx), at(newCh, newStartIdx)
		default:
			if oldKeyToIdx == nil {
				oldKeyToIdx = createKeyToOldIdx(oldCh, oldStartIdx, oldEndIdx)
			}
			idxInOld := -1
			if newStart.Key != nil {
				if i, ok := oldKeyToIdx[newStart.Key]; ok {
					idxInOld = i
				}
			} else {
				idxInOld = findIdxInOld(newStart, oldCh, oldStartIdx, oldEndIdx)
			}

			if idxInOld < 0 {
				p.createElm(newStart, queue, parentElm, oldStart.Elm, false, newCh, newStartIdx)
			} else if toMove := oldCh[idxInOld]; toMove != nil && sameVnode(toMove, newStart) {
				p.patchVnode(toMove, newStart, queue)
				oldCh[idxInOld] = nil
				p.insert(parentElm, toMove.Elm, oldStart.Elm)
			} else {
				// Same key, different identity: treat as a new node.
				p.createElm(newStart, queue, parentElm, oldStart.Elm, false, newCh, newStartIdx)
			}
			newStartIdx++
			newStart = at(newCh, newStartIdx)
		}
	}

	if oldStartIdx > oldEndIdx {
		var refElm Node
		if n := at(newCh, newEndIdx+1); n != nil {
			refElm = n.Elm
		}
		p.addVnodes(parentElm, refElm, newCh, newStartIdx, newEndIdx, queue)
	} else if newStartIdx > newEndIdx {
		p.removeVnodes(oldCh, oldStartIdx, oldEndIdx)
	}
}

// at returns list[i], or nil when i is out of range.
func at(list []*VNode, i int) *VNode {
	if i < 0 || i >= len(list) {
		return nil
	}
	return list[i]
}

func createKeyToOldIdx(children []*VNode, begin, end int) map[any]int {
	m := make(map[any]int)
	for i := begin; i <= end; i++ {
		if c := children[i]; c != nil && c.Key != nil {
			m[c.Key] = i
		}
	}
	return m
}

func findIdxInOld(node *VNode, oldCh []*VNode, start, end int) int {
	for i := start; i <= end; i++ {
		if c := oldCh[i]; c != nil && sameVnode(node, c) {
			return i
		}
	}
	return -1
}

// checkDuplicateKeys warns about siblings sharing a key. Reconciliation
// still proceeds with whichever match it finds first.
func (p *Patcher) checkDuplicateKeys(parent *VNode, children []*VNode) {
	var seen map[any]bool
	for _, c := range children {
		if c == nil || c.Key == nil {
			continue
		}
		if seen == nil {
			seen = make(map[any]bool, len(children))
		}
		if seen[c.Key] {
			p.warn(errors.New("P001").
				WithDetail(fmt.Sprintf("Duplicate key %v among the children of <%s>.", c.Key, parent.Tag)).
				WithSuggestion("Give every sibling a unique key."), parent)
			continue
		}
		seen[c.Key] = true
	}
}
