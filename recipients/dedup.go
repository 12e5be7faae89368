package recipients

import "email-campaign/models"

// Dedup keeps the first recipient for each lowercased email, in input order.
func Dedup(list []models.Recipient) []models.Recipient {
	unique, _ := DedupWithDuplicates(list)
	return unique
}

// DedupWithDuplicates is Dedup that also returns the entries it dropped.
func DedupWithDuplicates(list []models.Recipient) (unique, dropped []models.Recipient) {
	seen := make(map[string]struct{}, len(list))
	unique = make([]models.Recipient, 0, len(list))
	for _, r := range list {
		key := r.Key()
		if _, ok := seen[key]; ok {
			dropped = append(dropped, r)
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, r)
	}
	return unique, dropped
}
