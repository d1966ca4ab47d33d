// Package operation
package operation

type DatabaseOperations struct {
	designOperation DesignOperationInterface
}

func NewDatabaseOperations(designOperation DesignOperationInterface) *DatabaseOperations {
	return &DatabaseOperations{designOperation: designOperation}
}

func (db *DatabaseOperations) DesignOperation() DesignOperationInterface {
	return db.designOperation
}
