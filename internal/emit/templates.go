package emit

// Line slices are rendered one per line; nested indentation is already part
// of each line.

const testClassTemplate = `package {{.Package}};

import static org.junit.Assert.*;

{{range .Imports}}import {{.}};
{{end}}
{{range .Head}}{{.}}
{{end}}public class {{.Name}} {

    private IOSDriver<MobileElement> driver;

    @Rule
    public ExceptionRule exceptionRule = new ExceptionRule();

    @Rule
    public NoResetSettingRule noResetSettingRule = new NoResetSettingRule();

    @Rule
    public UserLoginTestRule userLoginTestRule = new UserLoginTestRule();

    private String userName;

    private String pid;

    private String password;

    private Integer width;

    private Integer height;

    private long implicitlyWaitSec;

    @Before
    public void setUp() throws MalformedURLException {
{{range .Setup}}        {{.}}
{{end}}    }

    @After
    public void tearDown() {
    }
{{range .Methods}}
{{range .Head}}    {{.}}
{{end}}    @Test
    public void {{.Name}}() {
{{range .Body}}        {{.}}
{{end}}    }
{{end}}}
`

const utilClassTemplate = `package {{.Package}};

{{range .Imports}}import {{.}};
{{end}}
{{range .Head}}{{.}}
{{end}}public class {{.Name}} {
{{range .Methods}}
{{range .Head}}    {{.}}
{{end}}    public static void {{.Name}}(IOSDriver<MobileElement> driver, String userName, String password, String pid, long implicitlyWaitSec) {
{{range .Body}}        {{.}}
{{end}}    }
{{end}}}
`
