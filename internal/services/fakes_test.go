package services

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopstack-products/internal/models"
	"shopstack-products/internal/repositories"
)

// In-memory fakes implementing the repository interfaces. Mutations are
// mutex-guarded so concurrency tests exercise the same guarantees the
// conditional store updates provide.

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]models.Product
	findErr  error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[primitive.ObjectID]models.Product)}
}

func (r *fakeProductRepo) add(p models.Product) models.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.products[p.ID] = p
	return p
}

func (r *fakeProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) FindByName(_ context.Context, name string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) sorted() []models.Product {
	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *fakeProductRepo) Find(_ context.Context, _ bson.M, page, limit int) ([]models.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, 0, r.findErr
	}
	all := r.sorted()
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []models.Product{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeProductRepo) FindSummaries(ctx context.Context, filter bson.M, page, limit int) ([]models.Product, int64, error) {
	return r.Find(ctx, filter, page, limit)
}

func (r *fakeProductRepo) Autocomplete(_ context.Context, term string, limit int) ([]models.ProductSuggestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ProductSuggestion
	for _, p := range r.sorted() {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(term)) {
			out = append(out, models.ProductSuggestion{ID: p.ID, Name: p.Name})
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, id primitive.ObjectID, update bson.M) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	if v, ok := update["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := update["price"]; ok {
		p.Price = v.(float64)
	}
	if v, ok := update["rating"]; ok {
		p.Rating = v.(float64)
	}
	if v, ok := update["quantity"]; ok {
		p.Quantity = v.(int)
	}
	if v, ok := update["status"]; ok {
		p.Status = v.(string)
	}
	r.products[id] = p
	return &p, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) PriceRange(_ context.Context, _ bson.M) (*models.PriceRange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.products) == 0 {
		return nil, nil
	}
	var pr models.PriceRange
	first := true
	for _, p := range r.products {
		if first || p.Price < pr.Min {
			pr.Min = p.Price
		}
		if first || p.Price > pr.Max {
			pr.Max = p.Price
		}
		first = false
	}
	return &pr, nil
}

func (r *fakeProductRepo) DashboardKPI(_ context.Context) (*models.DashboardKPI, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kpi := &models.DashboardKPI{}
	for _, p := range r.products {
		kpi.TotalUniqueProducts++
		kpi.TotalStock += p.Quantity
		kpi.TotalAssetValue += p.Price * float64(p.Quantity)
	}
	return kpi, nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, items []models.CartItem) ([]models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	applied := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		p, ok := r.products[item.Product]
		if !ok || p.Quantity < item.Quantity {
			return applied, repositories.ErrInsufficientStock
		}
		p.Quantity -= item.Quantity
		r.products[item.Product] = p
		applied = append(applied, item)
	}
	return applied, nil
}

func (r *fakeProductRepo) IncrementStock(_ context.Context, items []models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		p, ok := r.products[item.Product]
		if !ok {
			continue
		}
		p.Quantity += item.Quantity
		r.products[item.Product] = p
	}
	return nil
}

func (r *fakeProductRepo) stock(id primitive.ObjectID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].Quantity
}

type fakeReferenceRepo struct {
	mu         sync.Mutex
	brands     map[string]models.Brand
	categories map[string]models.Category
}

func newFakeReferenceRepo() *fakeReferenceRepo {
	return &fakeReferenceRepo{
		brands:     make(map[string]models.Brand),
		categories: make(map[string]models.Category),
	}
}

func (r *fakeReferenceRepo) ResolveBrand(_ context.Context, name string) (*models.Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.brands[name]; ok {
		return &b, nil
	}
	b := models.Brand{ID: primitive.NewObjectID(), Name: name}
	r.brands[name] = b
	return &b, nil
}

func (r *fakeReferenceRepo) ResolveCategory(_ context.Context, slug string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.categories[slug]; ok {
		return &c, nil
	}
	c := models.Category{ID: primitive.NewObjectID(), Slug: slug}
	r.categories[slug] = c
	return &c, nil
}

func (r *fakeReferenceRepo) FindBrandByName(_ context.Context, name string) (*models.Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.brands {
		if strings.EqualFold(b.Name, name) {
			return &b, nil
		}
	}
	return nil, nil
}

func (r *fakeReferenceRepo) FindCategoryByName(_ context.Context, name string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if strings.EqualFold(c.Slug, name) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeReferenceRepo) ListBrands(_ context.Context) ([]models.Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Brand, 0, len(r.brands))
	for _, b := range r.brands {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeReferenceRepo) ListCategories(_ context.Context) ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[primitive.ObjectID]models.Cart

	// Test hooks: onPush runs before PushItem takes the lock, clearErr makes
	// ClearItems fail.
	onPush   func()
	clearErr error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[primitive.ObjectID]models.Cart)}
}

func (r *fakeCartRepo) Create(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	r.carts[cart.ID] = *cart
	return nil
}

func (r *fakeCartRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[id]; ok {
		items := make([]models.CartItem, len(c.Items))
		copy(items, c.Items)
		c.Items = items
		return &c, nil
	}
	return nil, nil
}

func (r *fakeCartRepo) ReplaceItems(_ context.Context, id primitive.ObjectID, items []models.CartItem) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[id]
	if !ok {
		return nil, nil
	}
	c.Items = items
	r.carts[id] = c
	return &c, nil
}

func (r *fakeCartRepo) SetItemQuantity(_ context.Context, cartID, productID primitive.ObjectID, quantity int) (*models.Cart, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[cartID]
	if !ok {
		return nil, false, nil
	}
	for i, item := range c.Items {
		if item.Product == productID {
			c.Items[i].Quantity = quantity
			r.carts[cartID] = c
			return &c, true, nil
		}
	}
	// The update filter matches on the item, so an absent item yields no
	// document, same as the Mongo repository.
	return nil, false, nil
}

func (r *fakeCartRepo) PushItem(_ context.Context, cartID primitive.ObjectID, item models.CartItem) (*models.Cart, error) {
	if r.onPush != nil {
		r.onPush()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[cartID]
	if !ok {
		return nil, nil
	}
	for _, existing := range c.Items {
		if existing.Product == item.Product {
			return nil, nil
		}
	}
	c.Items = append(c.Items, item)
	r.carts[cartID] = c
	return &c, nil
}

func (r *fakeCartRepo) PullItem(_ context.Context, cartID, productID primitive.ObjectID) (*models.Cart, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[cartID]
	if !ok {
		return nil, false, nil
	}
	pulled := false
	items := c.Items[:0]
	for _, item := range c.Items {
		if item.Product == productID {
			pulled = true
			continue
		}
		items = append(items, item)
	}
	if !pulled {
		return nil, false, nil
	}
	c.Items = items
	r.carts[cartID] = c
	return &c, true, nil
}

func (r *fakeCartRepo) ClearItems(_ context.Context, id primitive.ObjectID) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clearErr != nil {
		return nil, r.clearErr
	}
	c, ok := r.carts[id]
	if !ok {
		return nil, nil
	}
	c.Items = []models.CartItem{}
	r.carts[id] = c
	return &c, nil
}

func (r *fakeCartRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, id)
	return nil
}

type fakeFavoriteRepo struct {
	mu        sync.Mutex
	favorites map[primitive.ObjectID]models.Favorite
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{favorites: make(map[primitive.ObjectID]models.Favorite)}
}

func (r *fakeFavoriteRepo) Create(_ context.Context, favorite *models.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if favorite.ID.IsZero() {
		favorite.ID = primitive.NewObjectID()
	}
	r.favorites[favorite.ID] = *favorite
	return nil
}

func (r *fakeFavoriteRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.favorites[id]; ok {
		return &f, nil
	}
	return nil, nil
}

func (r *fakeFavoriteRepo) PullProduct(_ context.Context, id, productID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.favorites[id]
	if !ok {
		return false, nil
	}
	for i, item := range f.Favorites {
		if item.Product == productID {
			f.Favorites = append(f.Favorites[:i], f.Favorites[i+1:]...)
			f.Quantity--
			r.favorites[id] = f
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFavoriteRepo) PushProduct(_ context.Context, id, productID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.favorites[id]
	if !ok {
		return false, nil
	}
	for _, item := range f.Favorites {
		if item.Product == productID {
			return false, nil
		}
	}
	f.Favorites = append(f.Favorites, models.FavoriteItem{Product: productID})
	f.Quantity++
	r.favorites[id] = f
	return true, nil
}

func (r *fakeFavoriteRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.favorites, id)
	return nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{}
}

func (r *fakeReviewRepo) Create(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *fakeReviewRepo) FindByProduct(_ context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Review
	for _, review := range r.reviews {
		if review.Product == productID {
			out = append(out, review)
		}
	}
	return out, nil
}

// fakeProductCache stores entries as JSON so GetListing round-trips through
// serialization the way the Redis-backed cache does.
type fakeProductCache struct {
	mu            sync.Mutex
	products      map[string][]byte
	listings      map[string][]byte
	invalidations int
	invalidated   [][]string
}

func newFakeProductCache() *fakeProductCache {
	return &fakeProductCache{
		products: make(map[string][]byte),
		listings: make(map[string][]byte),
	}
}

func (c *fakeProductCache) GetProduct(_ context.Context, id string) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.products[id]
	if !ok {
		return nil, nil
	}
	var p models.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *fakeProductCache) SetProduct(_ context.Context, id string, product *models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	c.products[id] = data
	return nil
}

func (c *fakeProductCache) GetListing(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.listings[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *fakeProductCache) SetListing(_ context.Context, key string, value interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.listings[key] = data
	return nil
}

func (c *fakeProductCache) Invalidate(_ context.Context, productIDs []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range productIDs {
		delete(c.products, id)
	}
	c.listings = make(map[string][]byte)
	c.invalidations++
	c.invalidated = append(c.invalidated, productIDs)
	return nil
}

func (c *fakeProductCache) listingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.listings)
}

func (c *fakeProductCache) hasListing(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.listings[key]
	return ok
}
