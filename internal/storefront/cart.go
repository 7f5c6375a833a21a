package storefront

import (
	"context"
	"strings"

	"biteaffair/internal/cart"
	"biteaffair/internal/guests"
	"biteaffair/internal/menu"
	"biteaffair/internal/pricing"
	"biteaffair/internal/reconcile"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// CartView is the cart plus the guest count it was priced for.
type CartView struct {
	cart.Summary
	Guests guests.Count `json:"guest_count"`
}

func viewOf(sess *Session) CartView {
	return CartView{Summary: sess.cart.Summary(), Guests: sess.guests}
}

func (s *Store) Cart(ctx context.Context, sessionID string) (CartView, error) {
	var out CartView
	err := s.with(ctx, sessionID, func(sess *Session) error {
		out = viewOf(sess)
		return nil
	})
	return out, err
}

// AddItem is a request to add one catalog dish.
type AddItem struct {
	ItemID    string
	Mode      menu.Mode
	Tier      menu.Tier
	Customize bool
}

// shortID is the suffix that keeps customized copies of a dish apart.
func shortID() string {
	return strings.SplitN(uuid.New().String(), "-", 2)[0]
}

// AddCatalogItem resolves a dish for the session's guest count and adds it.
// A customized copy gets its own line id so it never merges.
func (s *Store) AddCatalogItem(ctx context.Context, sessionID string, req AddItem) (CartView, error) {
	switch req.Mode {
	case menu.ModeVegPackage:
		return CartView{}, ErrPackageDish
	case menu.ModeFixedPackages:
		return CartView{}, ErrWrongMode
	}

	var out CartView
	err := s.with(ctx, sessionID, func(sess *Session) error {
		resolved, err := s.catalog.ResolveOne(ctx, menu.Request{Mode: req.Mode, Tier: req.Tier}, req.ItemID, sess.guests)
		if err != nil {
			return err
		}

		id := resolved.ID
		if req.Customize {
			id = resolved.ID + "_" + shortID()
		}

		serves := resolved.Serves
		if serves <= 0 {
			serves = 1
		}

		line := cart.Line{
			ID:          id,
			ItemID:      resolved.ID,
			Name:        resolved.Name,
			Category:    menu.ClassifyCategory(resolved.Item),
			Diet:        resolved.Diet,
			Mode:        req.Mode,
			Quantity:    serves,
			UnitPrice:   pricing.UnitPrice(resolved.Price, serves),
			Portion:     resolved.PortionText,
			PortionSpec: resolved.Portion,
			BaseServes:  resolved.BaseServes,
		}
		if err := sess.cart.Add(line); err != nil {
			return err
		}

		s.persist(ctx, sess, KeyCart)
		out = viewOf(sess)
		return nil
	})
	return out, err
}

// AddVegPackage validates a selection and adds it as one line priced per
// veg guest.
func (s *Store) AddVegPackage(ctx context.Context, sessionID string, tier menu.Tier, sel menu.Selection) (CartView, error) {
	details, err := s.catalog.ValidatePackage(ctx, tier, sel)
	if err != nil {
		return CartView{}, err
	}

	var out CartView
	err = s.with(ctx, sessionID, func(sess *Session) error {
		line := cart.Line{
			ID:        "veg_package_" + uuid.New().String(),
			ItemID:    "veg_package_" + string(details.Tier),
			Name:      menu.VegPackageName(details.Tier),
			Category:  menu.CategoryMainCourse,
			Diet:      menu.DietVeg,
			Mode:      menu.ModeVegPackage,
			Quantity:  sess.guests.Veg,
			UnitPrice: menu.VegPackagePricePerGuest,
			Package: &cart.Package{
				Kind:   menu.KindPackageDish,
				Tier:   details.Tier,
				Slots:  details.Slots,
				Extras: details.Extras,
			},
		}
		if err := sess.cart.Add(line); err != nil {
			return err
		}

		s.persist(ctx, sess, KeyCart)
		out = viewOf(sess)
		return nil
	})
	return out, err
}

// AddFixedPackage adds a package line for pax guests, or the package's own
// default when pax is zero.
func (s *Store) AddFixedPackage(ctx context.Context, sessionID, itemID string, pax int) (CartView, error) {
	var out CartView
	err := s.with(ctx, sessionID, func(sess *Session) error {
		req := menu.Request{Mode: menu.ModeFixedPackages, Pax: pax}
		resolved, err := s.catalog.ResolveOne(ctx, req, itemID, sess.guests)
		if err != nil {
			return err
		}
		if resolved.Package == nil {
			return ErrNotAPackage
		}

		line := cart.Line{
			ID:        resolved.ID,
			ItemID:    resolved.ID,
			Name:      resolved.Name,
			Category:  menu.CategoryMainCourse,
			Diet:      resolved.Diet,
			Mode:      menu.ModeFixedPackages,
			Quantity:  resolved.Serves,
			UnitPrice: pricing.UnitPrice(resolved.Price, resolved.Serves),
			Package: &cart.Package{
				Kind:     menu.KindFixedPackage,
				Key:      resolved.Package.Key,
				Includes: resolved.Package.Includes,
				Items:    resolved.Package.Items,
			},
		}
		if err := sess.cart.Add(line); err != nil {
			return err
		}

		s.persist(ctx, sess, KeyCart)
		out = viewOf(sess)
		return nil
	})
	return out, err
}

func (s *Store) AddAddon(ctx context.Context, sessionID, addonID string) (CartView, error) {
	addon, err := s.catalog.Addon(ctx, addonID)
	if err != nil {
		return CartView{}, err
	}

	var out CartView
	err = s.with(ctx, sessionID, func(sess *Session) error {
		line := cart.Line{
			ID:        "addon_" + addon.ID,
			ItemID:    addon.ID,
			Name:      addon.Name,
			Quantity:  1,
			UnitPrice: addon.Price,
			Addon:     true,
		}
		if err := sess.cart.Add(line); err != nil {
			return err
		}

		s.persist(ctx, sess, KeyCart)
		out = viewOf(sess)
		return nil
	})
	return out, err
}

// StepLine is the cart-line stepper. For a tracked line the change is
// written back into its guest bucket and every line of that bucket follows
// in the same pass. Exempt lines change on their own. A quantity of zero or
// less removes the line.
func (s *Store) StepLine(ctx context.Context, sessionID, lineID string, qty int) (CartView, error) {
	var out CartView
	err := s.with(ctx, sessionID, func(sess *Session) error {
		line, ok := sess.cart.Line(lineID)
		if !ok {
			return cart.ErrLineNotFound
		}

		if qty <= 0 {
			if _, err := sess.cart.UpdateQuantity(lineID, qty, nil); err != nil {
				return err
			}
			s.persist(ctx, sess, KeyCart)
			out = viewOf(sess)
			return nil
		}

		bucket, tracked := reconcile.BucketFor(line)
		if !tracked {
			var patch *cart.Patch
			if line.PortionSpec != "" {
				portion := pricing.ScalePortion(line.PortionSpec, line.BaseServes, qty)
				patch = &cart.Patch{Portion: &portion}
			}
			if _, err := sess.cart.UpdateQuantity(lineID, qty, patch); err != nil {
				return err
			}
			sess.reconciler.Lock().Touch()
			s.persist(ctx, sess, KeyCart)
			out = viewOf(sess)
			return nil
		}

		delta := qty - line.Quantity
		sess.guests = sess.guests.With(bucket, sess.guests.Get(bucket)+delta)
		updated := sess.reconciler.Patch(sess.cart, sess.guests, bucket)
		s.schedule(sess, s.editWindow)
		s.persist(ctx, sess, KeyGuestCount, KeyCart)

		log.WithFields(log.Fields{
			"session": sess.ID,
			"line":    lineID,
			"bucket":  bucket,
			"guests":  sess.guests.Get(bucket),
			"updated": updated,
		}).Debug("cart stepper wrote back guest count")

		out = viewOf(sess)
		return nil
	})
	return out, err
}

func (s *Store) RemoveLine(ctx context.Context, sessionID, lineID string) (CartView, error) {
	var out CartView
	err := s.with(ctx, sessionID, func(sess *Session) error {
		if err := sess.cart.Remove(lineID); err != nil {
			return err
		}
		s.persist(ctx, sess, KeyCart)
		out = viewOf(sess)
		return nil
	})
	return out, err
}

func (s *Store) ClearCart(ctx context.Context, sessionID string) (CartView, error) {
	var out CartView
	err := s.with(ctx, sessionID, func(sess *Session) error {
		sess.cart.Clear()
		s.persist(ctx, sess, KeyCart)
		out = viewOf(sess)
		return nil
	})
	return out, err
}
