package catalog

import (
	"fmt"
	"sort"
	"sync"

	"gift-auction/internal/auctionerrors"
	"gift-auction/internal/models"
)

// Store defines the catalog and ownership storage interface for the
// auction system. Gift inventory is read-mostly: gifts are minted outside
// the bidding write path, while ownership records are written only by the
// ownership recorder at settlement.
type Store interface {
	GetCollection(collectionID string) (models.Collection, error)
	GiftsOf(collectionID string) ([]models.Gift, error)
	TotalRemaining(collectionID string) (int, error)
	UnownedGifts(collectionID string) ([]string, error)

	RecordOwnership(o models.Ownership) error
	OwnershipOf(giftID string) (models.Ownership, error)
	GiftsByOwner(ownerID string) ([]models.Gift, error)
}

// MemoryCatalog is a concurrency-safe in-memory implementation of Store.
type MemoryCatalog struct {
	mu          sync.RWMutex
	collections map[string]models.Collection
	gifts       map[string]models.Gift
	giftOrder   map[string][]string          // collectionID -> gift ids in mint order
	ownerships  map[string]models.Ownership  // giftID -> live ownership
	ownerGifts  map[string][]string          // ownerID -> gift ids owned
}

// NewMemoryCatalog creates a new in-memory catalog instance
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		collections: make(map[string]models.Collection),
		gifts:       make(map[string]models.Gift),
		giftOrder:   make(map[string][]string),
		ownerships:  make(map[string]models.Ownership),
		ownerGifts:  make(map[string][]string),
	}
}

// AddCollection registers a collection with zero minted gifts.
func (c *MemoryCatalog) AddCollection(col models.Collection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collections[col.CollectionID] = col
}

// MintGift creates a gift inside its collection, bumping the collection's
// minted amount. Minting beyond the collection's total supply fails.
func (c *MemoryCatalog) MintGift(gift models.Gift) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	col, ok := c.collections[gift.CollectionID]
	if !ok {
		return fmt.Errorf("catalog: mint gift %s: %w", gift.GiftID, auctionerrors.ErrCollectionNotFound)
	}
	if col.MintedAmount >= col.TotalAmount {
		return fmt.Errorf("catalog: mint gift %s into collection %s: %w",
			gift.GiftID, gift.CollectionID, auctionerrors.ErrCollectionSupplyLimit)
	}

	col.MintedAmount++
	c.collections[gift.CollectionID] = col
	c.gifts[gift.GiftID] = gift
	c.giftOrder[gift.CollectionID] = append(c.giftOrder[gift.CollectionID], gift.GiftID)
	return nil
}

// GetCollection returns a collection by id.
func (c *MemoryCatalog) GetCollection(collectionID string) (models.Collection, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	col, ok := c.collections[collectionID]
	if !ok {
		return models.Collection{}, fmt.Errorf("catalog: get collection %s: %w", collectionID, auctionerrors.ErrCollectionNotFound)
	}
	return col, nil
}

// GiftsOf returns the collection's gifts in mint order.
func (c *MemoryCatalog) GiftsOf(collectionID string) ([]models.Gift, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.collections[collectionID]; !ok {
		return nil, fmt.Errorf("catalog: gifts of collection %s: %w", collectionID, auctionerrors.ErrCollectionNotFound)
	}

	ids := c.giftOrder[collectionID]
	gifts := make([]models.Gift, 0, len(ids))
	for _, id := range ids {
		gifts = append(gifts, c.gifts[id])
	}
	return gifts, nil
}

// TotalRemaining returns how many of the collection's gifts are still
// unowned.
func (c *MemoryCatalog) TotalRemaining(collectionID string) (int, error) {
	unowned, err := c.UnownedGifts(collectionID)
	if err != nil {
		return 0, err
	}
	return len(unowned), nil
}

// UnownedGifts returns the ids of the collection's gifts with no live
// ownership record, in mint order.
func (c *MemoryCatalog) UnownedGifts(collectionID string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.collections[collectionID]; !ok {
		return nil, fmt.Errorf("catalog: unowned gifts of collection %s: %w", collectionID, auctionerrors.ErrCollectionNotFound)
	}

	var unowned []string
	for _, id := range c.giftOrder[collectionID] {
		if _, owned := c.ownerships[id]; !owned {
			unowned = append(unowned, id)
		}
	}
	return unowned, nil
}

// RecordOwnership stores the live ownership record for a gift. Recording
// the same ownership id again is a no-op so settlement retries stay
// idempotent; a different ownership for an already-owned gift is rejected.
func (c *MemoryCatalog) RecordOwnership(o models.Ownership) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.gifts[o.GiftID]; !ok {
		return fmt.Errorf("catalog: record ownership of gift %s: %w", o.GiftID, auctionerrors.ErrGiftNotFound)
	}

	if existing, ok := c.ownerships[o.GiftID]; ok {
		if existing.OwnershipID == o.OwnershipID {
			return nil
		}
		return fmt.Errorf("catalog: record ownership of gift %s: %w", o.GiftID, auctionerrors.ErrGiftAlreadyOwned)
	}

	c.ownerships[o.GiftID] = o
	c.ownerGifts[o.OwnerID] = append(c.ownerGifts[o.OwnerID], o.GiftID)
	return nil
}

// OwnershipOf returns the live ownership record for a gift.
func (c *MemoryCatalog) OwnershipOf(giftID string) (models.Ownership, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	o, ok := c.ownerships[giftID]
	if !ok {
		return models.Ownership{}, fmt.Errorf("catalog: ownership of gift %s: %w", giftID, auctionerrors.ErrGiftNotFound)
	}
	return o, nil
}

// GiftsByOwner returns all gifts a user has won, ordered by gift id for a
// stable listing.
func (c *MemoryCatalog) GiftsByOwner(ownerID string) ([]models.Gift, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := append([]string(nil), c.ownerGifts[ownerID]...)
	sort.Strings(ids)

	gifts := make([]models.Gift, 0, len(ids))
	for _, id := range ids {
		if gift, exists := c.gifts[id]; exists {
			gifts = append(gifts, gift)
		}
	}
	return gifts, nil
}
