package nitem

import (
	"github.com/sirupsen/logrus"

	"niftree/nif/nexpr"
)

// Host is what a tree needs from the document owning it.
type Host interface {
	// Version is the file version conditions are evaluated against, 0 when unknown.
	Version() uint32
	// ResolveFieldValue looks name up for the cond, arr1 and arr2 expressions of item.
	// Siblings are searched first, then the ancestors.
	ResolveFieldValue(item *Item, name string) nexpr.Value
	// ResolveVersionValue looks name up for the vercond expression of item.
	ResolveVersionValue(item *Item, name string) nexpr.Value
	ReportError(item *Item, msg string)
	ReportFuncError(item *Item, funcName string, msg string)
	// ItemRepr is a human readable location of item.
	ItemRepr(item *Item) string
	// LinkTarget is the top level record a link points at, nil for null or dangling links.
	LinkTarget(link int32) *Item
	// ValueChanged is called after the value of item was written and the conditions of its
	// record were dropped.
	ValueChanged(item *Item)
}

func (r *Item) reportError(msg string) {
	if r.host != nil {
		r.host.ReportError(r, msg)
		return
	}
	logrus.WithField("item", r.Path()).Debug(msg)
}

func (r *Item) reportFuncError(funcName string, msg string) {
	if r.host != nil {
		r.host.ReportFuncError(r, funcName, msg)
		return
	}
	logrus.WithFields(logrus.Fields{
		"item": r.Path(),
		"func": funcName,
	}).Debug(msg)
}

// Repr is the host's description of the item, or its Path without a host.
func (r *Item) Repr() string {
	if r.host != nil {
		return r.host.ItemRepr(r)
	}
	return r.Path()
}

func (r *Item) resolver() nexpr.Resolver {
	if r.host == nil {
		return nil
	}
	return func(name string) nexpr.Value {
		return r.host.ResolveFieldValue(r, name)
	}
}

func (r *Item) versionResolver() nexpr.Resolver {
	if r.host == nil {
		return nil
	}
	return func(name string) nexpr.Value {
		return r.host.ResolveVersionValue(r, name)
	}
}

func (r *Item) version() uint32 {
	if r.host == nil {
		return 0
	}
	return r.host.Version()
}

// LinkTarget is the record the item's link value points at.
func (r *Item) LinkTarget() *Item {
	if r.host == nil || !r.IsLink() {
		return nil
	}
	return r.host.LinkTarget(r.value.ToLink())
}
