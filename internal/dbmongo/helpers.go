package dbmongo

import (
	"errors"

	"skillnaav/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func objectID(field, hex string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, common.InvalidArgument("invalid %s format", field)
	}
	return oid, nil
}

func objectIDs(hexes []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		if oid, err := primitive.ObjectIDFromHex(h); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

// optionalID converts an empty string into the zero ObjectID instead of failing.
func optionalID(hex string) primitive.ObjectID {
	if hex == "" {
		return primitive.NilObjectID
	}
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID
	}
	return oid
}

func hexOrEmpty(oid primitive.ObjectID) string {
	if oid.IsZero() {
		return ""
	}
	return oid.Hex()
}

// storeError maps driver errors onto error kinds. ErrNoDocuments is left
// for callers since only they know which resource is missing.
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *common.Error
	if errors.As(err, &appErr) {
		return err
	}
	if mongo.IsDuplicateKeyError(err) {
		return common.WrapError(common.KindAlreadyExists, "duplicate key", err)
	}
	return common.StoreUnavailable(op, err)
}
