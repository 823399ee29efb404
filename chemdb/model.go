/*
 * model.go, part of goavo.
 *
 *
 * Copyright 2024 Raul Mera <rmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package chemdb

import "strconv"

//EventKind tells what structural change an Event announces.
type EventKind int

const (
	RowsAboutToBeInserted EventKind = iota
	RowsInserted
	RowsAboutToBeRemoved
	RowsRemoved
)

func (E EventKind) String() string {
	switch E {
	case RowsAboutToBeInserted:
		return "RowsAboutToBeInserted"
	case RowsInserted:
		return "RowsInserted"
	case RowsAboutToBeRemoved:
		return "RowsAboutToBeRemoved"
	case RowsRemoved:
		return "RowsRemoved"
	}
	return "EventKind(" + strconv.Itoa(int(E)) + ")"
}

//Event announces a structural change to the rows First..Last (inclusive)
//under Parent. An empty range has Last == First-1.
type Event struct {
	Kind   EventKind
	Parent Index
	First  int
	Last   int
}

//Empty is true for an event covering no rows.
func (E Event) Empty() bool {
	return E.Last < E.First
}

//Listener receives the events of a Model, synchronously, in the order
//they happen. Each change is bracketed by an "about to" event, sent
//before the model changes, and a "done" event sent after.
type Listener func(Event)

//Orientation selects horizontal (column) or vertical (row) headers.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

//Index addresses a cell in the model. The zero Index is invalid and
//stands for the root.
type Index struct {
	row, col int
	node     int //arena position, 0 is the root.
}

//Valid returns false for the root index.
func (I Index) Valid() bool { return I.node > 0 }

func (I Index) Row() int    { return I.row }
func (I Index) Column() int { return I.col }

type node struct {
	data     Record
	children []int
}

const numColumns = 3

var headers = [numColumns]string{"Formula", "SMILES", "InChIKey"}

//Model presents records as the children of an implicit root node. It
//speaks the usual tree-model language (Index, Parent, RowCount) but
//only the root has children.
//
//Nodes live in an arena: node 0 is the root, and the root's children
//are arena positions. Removing a row drops its position from the child
//list, and free arena slots are reused.
//
//A Model is meant to be used from a single goroutine.
type Model struct {
	nodes     []node
	free      []int
	listeners map[int]Listener
	nextID    int
}

//NewModel returns an empty model.
func NewModel() *Model {
	return &Model{nodes: []node{{}}, listeners: make(map[int]Listener)}
}

//Subscribe registers l and returns a function that removes it.
func (M *Model) Subscribe(l Listener) (unsubscribe func()) {
	id := M.nextID
	M.nextID++
	M.listeners[id] = l
	return func() { delete(M.listeners, id) }
}

func (M *Model) emit(kind EventKind, first, last int) {
	ev := Event{Kind: kind, First: first, Last: last}
	//Listeners are called in registration order.
	for id := 0; id < M.nextID; id++ {
		if l, ok := M.listeners[id]; ok {
			l(ev)
		}
	}
}

func (M *Model) root() *node { return &M.nodes[0] }

//child returns the arena position for the given row, or 0 if out of range.
func (M *Model) child(row int) int {
	ch := M.root().children
	if row < 0 || row >= len(ch) {
		return 0
	}
	return ch[row]
}

//Count returns the number of records.
func (M *Model) Count() int {
	return len(M.root().children)
}

//RowCount returns the number of children of parent. Only the root has children.
func (M *Model) RowCount(parent Index) int {
	if parent.Valid() {
		return 0
	}
	return M.Count()
}

//ColumnCount is always 3: formula, SMILES and InChIKey.
func (M *Model) ColumnCount() int {
	return numColumns
}

//HeaderData returns the column titles for Horizontal, and the 1-based row
//numbers for Vertical. It returns "" for out of range sections.
func (M *Model) HeaderData(section int, o Orientation) string {
	if o == Vertical {
		return strconv.Itoa(section + 1)
	}
	if section < 0 || section >= numColumns {
		return ""
	}
	return headers[section]
}

//Index returns the index for row and column under parent, or the invalid
//index if there is no such cell.
func (M *Model) Index(row, column int, parent Index) Index {
	if parent.Valid() || column < 0 || column >= numColumns {
		return Index{}
	}
	n := M.child(row)
	if n == 0 {
		return Index{}
	}
	return Index{row: row, col: column, node: n}
}

//Parent returns the parent of idx. Every record's parent is the root,
//which is represented by the invalid index.
func (M *Model) Parent(idx Index) Index {
	return Index{}
}

//Data returns the text shown for idx.
func (M *Model) Data(idx Index) string {
	if !idx.Valid() || idx.node >= len(M.nodes) {
		return ""
	}
	return field(M.nodes[idx.node].data, idx.col)
}

func field(r Record, column int) string {
	switch column {
	case 0:
		return r.Formula()
	case 1:
		return r.SMILES()
	case 2:
		return r.InChIKey()
	}
	return ""
}

//FieldAt returns the formula (column 0), SMILES (1) or InChIKey (2) of the
//record at row. It returns "" if row or column are out of range.
func (M *Model) FieldAt(row, column int) string {
	n := M.child(row)
	if n == 0 {
		return ""
	}
	return field(M.nodes[n].data, column)
}

//RecordAt returns the record at row, or nil.
func (M *Model) RecordAt(row int) Record {
	n := M.child(row)
	if n == 0 {
		return nil
	}
	return M.nodes[n].data
}

//IDAt returns the database id of the record at row, or "".
func (M *Model) IDAt(row int) string {
	return M.RecordAt(row).ID()
}

//NameAt returns the name of the record at row. Records without a name
//are named after their formula.
func (M *Model) NameAt(row int) string {
	r := M.RecordAt(row)
	if r == nil {
		return ""
	}
	if name := r.Name(); name != "" {
		return name
	}
	return r.Formula()
}

//Append adds r as the last row.
func (M *Model) Append(r Record) {
	row := M.Count()
	M.emit(RowsAboutToBeInserted, row, row)
	var pos int
	if l := len(M.free); l > 0 {
		pos = M.free[l-1]
		M.free = M.free[:l-1]
		M.nodes[pos] = node{data: r}
	} else {
		pos = len(M.nodes)
		M.nodes = append(M.nodes, node{data: r})
	}
	M.root().children = append(M.root().children, pos)
	M.emit(RowsInserted, row, row)
}

//RemoveAt removes the record at row. It returns false, and does nothing
//else, if row is out of range.
func (M *Model) RemoveAt(row int) bool {
	n := M.child(row)
	if n == 0 {
		return false
	}
	M.emit(RowsAboutToBeRemoved, row, row)
	root := M.root()
	root.children = append(root.children[:row], root.children[row+1:]...)
	M.release(n)
	M.emit(RowsRemoved, row, row)
	return true
}

//Remove removes the record at idx, if idx is valid.
func (M *Model) Remove(idx Index) bool {
	if !idx.Valid() {
		return false
	}
	return M.RemoveAt(idx.row)
}

//Clear removes every record with a single pair of events covering all
//rows. On an empty model the pair is still sent, with an empty range.
func (M *Model) Clear() {
	last := M.Count() - 1
	M.emit(RowsAboutToBeRemoved, 0, last)
	M.nodes = M.nodes[:1]
	M.nodes[0].children = nil
	M.free = nil
	M.emit(RowsRemoved, 0, last)
}

func (M *Model) release(pos int) {
	M.nodes[pos] = node{}
	M.free = append(M.free, pos)
}
