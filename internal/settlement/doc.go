// Package settlement splits shared expenses and settles the resulting debts.
//
// Allocate divides one expense amount among its participants, ComputeBalances
// folds expenses and settled payments into a signed net balance per user and
// SuggestTransfers turns those balances into debtor-to-creditor payments.
// All three are pure: they perform no I/O and keep no state between calls.
//
// Money is handled in integer cents internally. Balances follow the sign
// convention of the rest of the service: negative means the group owes the
// user, positive means the user owes the group.
package settlement
