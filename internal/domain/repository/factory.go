package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Accounts() AccountRepository
	Ledger() LedgerRepository
	Submissions() SubmissionRepository
	Withdrawals() WithdrawalRepository
}
