package config

// DefaultSourceFiles select the sources scanned for upgrade candidates.
//
//nolint:gochecknoglobals // Read-only defaults.
var DefaultSourceFiles = []string{"**/*.java", "**/*.groovy", "**/*.kt"}

// DefaultBuildFiles select Gradle and Maven build descriptors.
//
//nolint:gochecknoglobals // Read-only defaults.
var DefaultBuildFiles = []string{
	"**/build.gradle",
	"**/build.gradle.kts",
	"**/settings.gradle",
	"**/settings.gradle.kts",
	"**/pom.xml",
}

// DefaultCIFiles select container and CI definitions at the repository root.
//
//nolint:gochecknoglobals // Read-only defaults.
var DefaultCIFiles = []string{"Dockerfile", ".gitlab-ci.yml", ".gitlab-ci.yaml"}

// DefaultSkipPatterns exclude generated output, tooling state and logs.
//
//nolint:gochecknoglobals // Read-only defaults.
var DefaultSkipPatterns = []string{
	// Build output
	"build/**",
	"bin/**",
	".gradle/**",
	"target/**",
	"out/**",

	// Generated sources
	"generated/**",
	"**/generated/**",
	"gen/**",
	"**/gen/**",

	// Artifacts
	"**/*.class",
	"**/*.jar",
	"**/*.war",
	"**/*.ear",

	// IDE state
	".idea/**",
	".vscode/**",
	"**/*.iml",

	".git/**",

	// Logs and scratch space
	"logs/**",
	"**/*.log",
	"tmp/**",
	"temp/**",
}

// DefaultJavaKeywords mark Java code that newer JDKs offer replacements for.
//
//nolint:gochecknoglobals // Read-only defaults.
var DefaultJavaKeywords = []string{
	// Collection factories (JDK 9-11)
	`Arrays\.asList\(`,
	`Collections\.unmodifiableList\(`,
	`Collections\.emptyList\(`,
	`Collections\.singletonList\(`,

	// String methods (JDK 11)
	`\.trim\(\)`,
	`\.isEmpty\(\)`,
	`StringUtils\.isBlank\(`,

	// Switch expressions (JDK 14)
	`switch\s*\([^)]+\)\s*\{`,
	`case\s+[^:]+:\s*break;`,

	// Pattern matching for instanceof (JDK 16)
	`instanceof\s+\w+\s*\)\s*\{`,
	`\(\s*\(\w+\)`,

	// Text blocks (JDK 15)
	`"\s*\+\s*"`,
	`"\s*\\n\s*"`,
	`String\.format\(`,

	// Records (JDK 16)
	`private\s+final\s+\w+`,
	`public\s+\w+\s+get\w+\(\)`,
	`@Override\s+public\s+boolean\s+equals`,
	`@Override\s+public\s+int\s+hashCode`,

	// Sealed classes (JDK 17)
	`public\s+(abstract\s+)?class\s+\w+`,
	`extends\s+\w+`,

	// Virtual threads (JDK 21)
	`Executors\.newFixedThreadPool\(`,
	`new\s+Thread\(`,
	`Thread\.start\(\)`,

	// Optional
	`if\s*\([^)]*!=\s*null\)`,
	`if\s*\([^)]*==\s*null\)`,

	// Streams
	`for\s*\([^)]*:\s*\w+\)`,
	`\.size\(\)\s*>\s*0`,
	`\.length\s*>\s*0`,

	// Try-with-resources
	`try\s*\{[^}]*\.close\(\)`,
	`finally\s*\{[^}]*\.close\(\)`,

	// Removed or encapsulated APIs
	`sun\.misc\.`,
	`com\.sun\.`,
	`java\.security\.AccessController`,
	`SecurityManager`,
	`System\.getSecurityManager`,

	// HTTP client (JDK 11)
	`HttpURLConnection`,
	`URLConnection`,

	// Legacy date and time
	`java\.util\.Date`,
	`SimpleDateFormat`,
	`Calendar\.`,
}

// DefaultGroovyKeywords mark Groovy and Gradle build constructs to modernise.
//
//nolint:gochecknoglobals // Read-only defaults.
var DefaultGroovyKeywords = []string{
	// Removed dependency configurations
	`compile\s+['"]`,
	`testCompile\s+['"]`,
	`runtime\s+['"]`,
	`testRuntime\s+['"]`,

	`apply\s+plugin:`,

	`groovy-all`,
	`org\.codehaus\.groovy`,

	`configurations\s*\{`,
	`sourceSets\s*\{`,

	`gradleVersion\s*=`,

	`task\s+\w+\s*\(`,

	`sourceCompatibility\s*=`,
	`targetCompatibility\s*=`,

	`compileJava\s*\{`,
	`compileGroovy\s*\{`,

	`dependencies\s*\{`,
	`implementation\s*\(`,
	`api\s*\(`,
	`testImplementation\s*\(`,

	`repositories\s*\{`,
	`mavenCentral\(\)`,
	`jcenter\(\)`,

	`publishing\s*\{`,
	`maven\s*\{`,
}

// DefaultKotlinKeywords mark Kotlin settings tied to the JVM target.
//
//nolint:gochecknoglobals // Read-only defaults.
var DefaultKotlinKeywords = []string{
	`jvmTarget\s*=\s*['"]1\.[8-9]['"]`,
	`jvmTarget\s*=\s*['"]11['"]`,

	`kotlin_version\s*=`,
	`org\.jetbrains\.kotlin`,

	// Coroutines that may become virtual threads
	`runBlocking\s*\{`,
	`suspend\s+fun`,
	`GlobalScope\.launch`,

	`kotlin\s*\(`,
	`kapt\s*\(`,

	`kotlinOptions\s*\{`,
	`compileKotlin\s*\{`,

	`kotlin\(['"]jvm['"]`,
	`kotlin\(['"]multiplatform['"]`,

	`kotlin-stdlib`,
	`kotlin-reflect`,

	`apiVersion\s*=`,
	`languageVersion\s*=`,
}
