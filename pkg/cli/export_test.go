package cli

var GetIndexConfig = getIndexConfig
var ImportFormat = importFormat
var CollectionNames = collectionNames
