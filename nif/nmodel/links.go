package nmodel

import (
	"fmt"

	"github.com/samber/lo"

	"niftree/ds"
	"niftree/nif/nitem"
)

// Links lists the link items below item. Only rows recorded in the link caches are visited.
func Links(item *nitem.Item) []*nitem.Item {
	return collectLinks(item, make([]*nitem.Item, 0))
}

func collectLinks(item *nitem.Item, links []*nitem.Item) []*nitem.Item {
	for _, row := range item.LinkRows() {
		links = append(links, item.Child(row))
	}
	for _, row := range item.LinkAncestorRows() {
		links = collectLinks(item.Child(row), links)
	}
	return links
}

// BlockLinks lists the non-null link values of the block at index.
func (r *Document) BlockLinks(index int) []int32 {
	block := r.Block(index)
	if block == nil {
		return nil
	}
	links := lo.Map(Links(block), func(item *nitem.Item, _ int) int32 {
		return item.Value().ToLink()
	})
	return lo.Filter(links, func(link int32, _ int) bool {
		return link >= 0
	})
}

// ReferencedBy lists the indices of the blocks linking to the block at index.
func (r *Document) ReferencedBy(index int) []int {
	return lo.Filter(ds.MakeRange(0, r.BlockCount(), 1), func(i int, _ int) bool {
		return lo.Contains(r.BlockLinks(i), int32(index))
	})
}

// RemoveBlock deletes the block at index. Links to it become null and links to later blocks
// move down by one.
func (r *Document) RemoveBlock(index int) bool {
	if r.Block(index) == nil {
		r.ReportFuncError(r.root, "RemoveBlock", fmt.Sprintf("no block at index %d", index))
		return false
	}
	r.root.RemoveChild(index + 1)
	removed := int32(index)
	r.mapLinks(func(link int32) int32 {
		switch {
		case link == removed:
			return -1
		case link > removed:
			return link - 1
		}
		return link
	})
	r.syncHeader()
	return true
}

// mapLinks rewrites every link value of every block.
func (r *Document) mapLinks(fn func(link int32) int32) {
	for _, block := range r.Blocks() {
		for _, item := range Links(block) {
			link := item.Value().ToLink()
			if mapped := fn(link); mapped != link {
				nitem.Set(item, mapped)
			}
		}
	}
}
