package rewards

// Reward is a redeemable catalog item.
type Reward struct {
	Slug      string
	Name      string
	Cost      int64
	Available bool
}

func RewardCatalog() []Reward {
	return []Reward{
		{Slug: "free-coffee", Name: "Free Coffee", Cost: 150, Available: true},
		{Slug: "book-store-voucher", Name: "Book Store Voucher", Cost: 300, Available: true},
		{Slug: "premium-membership", Name: "Premium Membership", Cost: 500, Available: true},
		{Slug: "signed-book", Name: "Signed Book", Cost: 800, Available: true},
		{Slug: "author-meet-greet", Name: "Author Meet & Greet", Cost: 1200, Available: false},
		{Slug: "kindle-e-reader", Name: "Kindle e-Reader", Cost: 2000, Available: false},
	}
}

// FindReward looks up a catalog reward by slug.
func FindReward(slug string) (Reward, bool) {
	for _, r := range RewardCatalog() {
		if r.Slug == slug {
			return r, true
		}
	}
	return Reward{}, false
}
