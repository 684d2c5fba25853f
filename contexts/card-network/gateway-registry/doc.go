// Package gatewayregistry implements the catalog of checkable gateway
// resources and the credit-metered check use case inside keygate.
//
// The registry itself has no authorization: reads are open to any
// authenticated caller and mutations are gated by the operator service at
// the command-channel boundary. The check path reaches the credit ledger
// only through the CreditLedger port, wired to the account service in
// bootstrap, so the debit-before-invoke contract stays in one place.
package gatewayregistry
