package events

// Keys used in Gerrit stream-events JSON documents.
const (
	KeyType           = "type"
	KeyEventCreatedOn = "eventCreatedOn"
	KeyChange         = "change"
	KeyPatchSet       = "patchSet"
	KeyUploader       = "uploader"
	KeyOwner          = "owner"

	KeyNumber   = "number"
	KeyRevision = "revision"
	KeyRef      = "ref"
	KeyIsDraft  = "isDraft"

	KeyProject = "project"
	KeyBranch  = "branch"
	KeyID      = "id"
	KeySubject = "subject"
	KeyURL     = "url"

	KeyName     = "name"
	KeyEmail    = "email"
	KeyUsername = "username"
)
